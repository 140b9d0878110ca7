package uptime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"gatewaymon/internal/civiltime"
)

// RecordTick diffs a fresh poll against the latest-known snapshot, appends
// any state changes to the current period's transition log, and overwrites
// the latest snapshot wholesale. Idempotent with respect to repeated polls
// observing the same state: at most one event per device per tick.
func (e *Engine) RecordTick(ctx context.Context, polls []GatewayState, now time.Time) (TickResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, err := e.readLatest(ctx)
	if err != nil {
		return TickResult{}, err
	}

	secondary := make(map[string]int, len(polls))
	for _, g := range polls {
		secondary[g.ID] = g.State
	}

	// First tick of a period anchors its baseline: previous latest-known
	// snapshot if any, else the just-polled states.
	period := civiltime.PeriodOf(now)
	if err := e.carry.ensure(ctx, period, prev, secondary); err != nil {
		return TickResult{}, fmt.Errorf("uptime: ensure carry %s: %w", period, err)
	}

	events, next := diffTick(prev, polls, now)

	if len(events) > 0 {
		var b strings.Builder
		for _, ev := range events {
			line, err := json.Marshal(transitionLine{T: civiltime.Encode(ev.At), GW: ev.GatewayID, S: ev.State})
			if err != nil {
				return TickResult{}, fmt.Errorf("uptime: encode transition: %w", err)
			}
			b.Write(line)
			b.WriteByte('\n')
		}
		if err := e.store.Append(ctx, transitionsBlobName(period), b.String()); err != nil {
			return TickResult{}, fmt.Errorf("uptime: append transitions %s: %w", period, err)
		}
	}

	// The snapshot must advance even when nothing changed, or the next
	// diff would compare against a stale baseline.
	if err := e.writeLatest(ctx, next); err != nil {
		return TickResult{}, err
	}

	e.log.Info("tick_recorded",
		zap.Int("gateways", len(polls)),
		zap.Int("transitions", len(events)),
		zap.String("period", period.String()),
	)
	return TickResult{Events: events, Snapshot: next}, nil
}

// diffTick is the edge-triggered diff: one event per device whose state
// differs from the previous snapshot, devices absent from it counting as
// down. The returned snapshot covers exactly the polled devices.
func diffTick(prev map[string]int, polls []GatewayState, now time.Time) ([]TransitionEvent, map[string]int) {
	var events []TransitionEvent
	next := make(map[string]int, len(polls))
	for _, g := range polls {
		if g.State != prev[g.ID] {
			events = append(events, TransitionEvent{At: now, GatewayID: g.ID, State: g.State})
		}
		next[g.ID] = g.State
	}
	return events, next
}
