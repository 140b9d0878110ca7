package uptime

import "time"

// Aggregate integrates interval durations directly, not via the raster, so
// the percentage carries no rounding loss.
func Aggregate(intervals []StateInterval, start, end time.Time) (up, down time.Duration, upFraction float64) {
	total := end.Sub(start)
	if total <= 0 {
		return 0, 0, 0
	}
	for _, iv := range intervals {
		if iv.State == StateUp {
			up += iv.To.Sub(iv.From)
		}
	}
	down = total - up
	upFraction = float64(up) / float64(total)
	return up, down, upFraction
}
