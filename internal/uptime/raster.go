package uptime

import "time"

// Rasterize converts an interval list into fixed-step boolean slots from
// start to end; the final slot may be shorter when the window is not an
// exact multiple of the step. A slot is up iff its up-state overlap is
// greater than or equal to half the slot's span. The tie resolving up is a
// stated policy, kept for compatibility with historical reports.
func Rasterize(intervals []StateInterval, start, end time.Time, step time.Duration) []bool {
	if step <= 0 || !end.After(start) {
		return nil
	}

	var slots []bool
	i := 0 // advancing pointer: both lists are time-ordered
	for slotStart := start; slotStart.Before(end); slotStart = slotStart.Add(step) {
		slotEnd := slotStart.Add(step)
		if slotEnd.After(end) {
			slotEnd = end
		}
		for i < len(intervals) && !intervals[i].To.After(slotStart) {
			i++
		}
		var up time.Duration
		for j := i; j < len(intervals) && intervals[j].From.Before(slotEnd); j++ {
			if intervals[j].State != StateUp {
				continue
			}
			from, to := intervals[j].From, intervals[j].To
			if from.Before(slotStart) {
				from = slotStart
			}
			if to.After(slotEnd) {
				to = slotEnd
			}
			if to.After(from) {
				up += to.Sub(from)
			}
		}
		slots = append(slots, 2*up >= slotEnd.Sub(slotStart))
	}
	return slots
}
