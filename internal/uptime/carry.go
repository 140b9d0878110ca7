package uptime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gatewaymon/internal/blob"
	"gatewaymon/internal/civiltime"
)

// carryStore manages the per-period baseline snapshots. A carry is created
// lazily on the first tick of a period and never touched again, even if
// later information would change it.
type carryStore struct {
	store blob.Store
	log   *zap.Logger
}

func carryBlobName(p civiltime.Period) string {
	return "uptime_carry_" + p.String()
}

// ensure creates the carry for period if none exists. The baseline is the
// primary snapshot when it has entries, else the secondary, else empty;
// this lets the very first period anchor itself from whatever is available
// instead of defaulting every device to down. Creation failure is a hard
// error: a silently missing carry breaks reconstruction for the period.
func (c *carryStore) ensure(ctx context.Context, period civiltime.Period, primary, secondary map[string]int) error {
	name := carryBlobName(period)
	_, err := c.store.Read(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, blob.ErrNotFound) {
		// Unreadable is treated as absent, same as a read miss.
		c.log.Warn("carry_read_degraded", zap.String("period", period.String()), zap.Error(err))
	}

	state := primary
	if len(state) == 0 {
		state = secondary
	}
	if state == nil {
		state = map[string]int{}
	}
	doc := carryDoc{
		PeriodStart: civiltime.Encode(period.Start()),
		State:       make(map[string]any, len(state)),
	}
	for gw, s := range state {
		doc.State[gw] = s
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode carry %s: %w", period, err)
	}
	if err := c.store.Write(ctx, name, string(payload)); err != nil {
		return fmt.Errorf("write carry %s: %w", period, err)
	}
	c.log.Info("carry_created",
		zap.String("period", period.String()),
		zap.Int("gateways", len(state)),
	)
	return nil
}

// read returns the carried state for one gateway in one period. Any
// failure degrades to absent: an unknown baseline is not the same as down.
func (c *carryStore) read(ctx context.Context, period civiltime.Period, gatewayID string) (int, bool) {
	raw, err := c.store.Read(ctx, carryBlobName(period))
	if err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			c.log.Warn("carry_read_degraded", zap.String("period", period.String()), zap.Error(err))
		}
		return StateDown, false
	}
	var doc carryDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		c.log.Warn("carry_parse_skip", zap.String("period", period.String()), zap.Error(err))
		return StateDown, false
	}
	v, ok := doc.State[gatewayID]
	if !ok {
		return StateDown, false
	}
	s, ok := NormalizeState(v)
	if !ok {
		c.log.Warn("carry_state_skip",
			zap.String("period", period.String()),
			zap.String("gateway", gatewayID),
		)
		return StateDown, false
	}
	return s, true
}
