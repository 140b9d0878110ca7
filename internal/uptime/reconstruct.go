package uptime

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"gatewaymon/internal/blob"
	"gatewaymon/internal/civiltime"
)

// reconstruct produces the ordered interval list covering [start, end] for
// one gateway, plus the raw events strictly inside (start, end]. The
// returned intervals are contiguous, non-overlapping, and their union is
// exactly the window; with zero matching events the result is one interval
// spanning the whole window at the initial state.
func (e *Engine) reconstruct(ctx context.Context, gatewayID string, start, end time.Time) ([]StateInterval, []TransitionEvent, error) {
	initial := StateDown
	haveCarry := false
	var events []TransitionEvent

	// Chronological multi-period scan. The first carry that knows the
	// device wins as the initial state; a device no carry knows defaults
	// to down.
	for _, p := range civiltime.PeriodsBetween(start, end) {
		if !haveCarry {
			if s, ok := e.carry.read(ctx, p, gatewayID); ok {
				initial, haveCarry = s, true
			}
		}
		evs, err := e.loadTransitions(ctx, p, gatewayID)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, evs...)
	}

	// Stable on ties: equal timestamps keep file order, so the last line
	// wins when the walk below applies them in sequence.
	sort.SliceStable(events, func(i, j int) bool { return events[i].At.Before(events[j].At) })

	// Events at or before the window start only establish the state there.
	state := initial
	idx := 0
	for idx < len(events) && !events[idx].At.After(start) {
		state = events[idx].State
		idx++
	}

	var intervals []StateInterval
	cursor := start
	for ; idx < len(events) && !events[idx].At.After(end); idx++ {
		ev := events[idx]
		if !ev.At.After(cursor) {
			// Duplicate or non-monotonic timestamp: no zero-length
			// interval, the state just advances.
			state = ev.State
			continue
		}
		intervals = append(intervals, StateInterval{From: cursor, To: ev.At, State: state})
		cursor = ev.At
		state = ev.State
	}
	if cursor.Before(end) {
		intervals = append(intervals, StateInterval{From: cursor, To: end, State: state})
	}

	var window []TransitionEvent
	for _, ev := range events {
		if ev.At.After(start) && !ev.At.After(end) {
			window = append(window, ev)
		}
	}
	return intervals, window, nil
}

// loadTransitions reads one period's log and keeps the lines for one
// gateway. A missing log means no events. Individual lines that fail to
// decode are skipped with a warning; reconstruction never aborts on
// malformed optional input.
func (e *Engine) loadTransitions(ctx context.Context, period civiltime.Period, gatewayID string) ([]TransitionEvent, error) {
	raw, err := e.store.Read(ctx, transitionsBlobName(period))
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var out []TransitionEvent
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var wire transitionLine
		if err := json.Unmarshal([]byte(line), &wire); err != nil {
			e.log.Warn("transition_parse_skip",
				zap.String("period", period.String()),
				zap.Error(err),
			)
			continue
		}
		if wire.GW != gatewayID {
			continue
		}
		at, err := civiltime.Decode(wire.T)
		if err != nil {
			e.log.Warn("transition_time_skip",
				zap.String("period", period.String()),
				zap.String("raw", wire.T),
			)
			continue
		}
		s, ok := NormalizeState(wire.S)
		if !ok {
			e.log.Warn("transition_state_skip",
				zap.String("period", period.String()),
				zap.String("gateway", wire.GW),
			)
			continue
		}
		out = append(out, TransitionEvent{At: at, GatewayID: wire.GW, State: s})
	}
	return out, nil
}
