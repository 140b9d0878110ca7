// Package scheduler drives the recording side: poll the fleet on a fixed
// interval and feed each tick to the reconstruction engine.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gatewaymon/internal/civiltime"
	"gatewaymon/internal/notify"
	"gatewaymon/internal/uptime"
)

type Poller interface {
	Poll(ctx context.Context) ([]uptime.GatewayState, error)
}

type Recorder interface {
	RecordTick(ctx context.Context, polls []uptime.GatewayState, now time.Time) (uptime.TickResult, error)
}

type Loop struct {
	Logger      *zap.Logger
	Poller      Poller
	Engine      Recorder
	Notifier    notify.Notifier
	DisplayName func(string) string
	Interval    time.Duration
	PollTimeout time.Duration
}

func NewLoop(
	logger *zap.Logger,
	poller Poller,
	engine Recorder,
	notifier notify.Notifier,
	displayName func(string) string,
	interval time.Duration,
) *Loop {
	if displayName == nil {
		displayName = func(id string) string { return id }
	}
	return &Loop{
		Logger:      logger,
		Poller:      poller,
		Engine:      engine,
		Notifier:    notifier,
		DisplayName: displayName,
		Interval:    interval,
		PollTimeout: 30 * time.Second,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	if l.Interval <= 0 {
		// disabled
		l.Logger.Info("recorder_disabled")
		return
	}
	t := time.NewTicker(l.Interval)
	defer t.Stop()

	l.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			l.Logger.Info("recorder_stopped")
			return
		case <-t.C:
			l.runOnce(ctx)
		}
	}
}

func (l *Loop) runOnce(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, l.PollTimeout)
	defer cancel()

	polls, err := l.Poller.Poll(pctx)
	if err != nil {
		l.Logger.Warn("recorder_poll_error", zap.Error(err))
		return
	}
	if len(polls) == 0 {
		return
	}

	res, err := l.Engine.RecordTick(ctx, polls, time.Now())
	if err != nil {
		l.Logger.Warn("recorder_tick_error", zap.Error(err))
		return
	}

	for _, ev := range res.Events {
		title := "🔴 Gateway OFFLINE"
		if ev.State == uptime.StateUp {
			title = "🟢 Gateway ONLINE"
		}
		text := l.DisplayName(ev.GatewayID) + "\n" + civiltime.Encode(ev.At)
		// Best-effort: a dropped alert never blocks recording.
		if l.Notifier != nil {
			if err := l.Notifier.Send(ctx, title, text); err != nil {
				l.Logger.Warn("recorder_notify_error",
					zap.String("gateway", ev.GatewayID),
					zap.Error(err),
				)
			}
		}
	}
}
