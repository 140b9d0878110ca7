// Package uptime reconstructs continuous up/down timelines for a fleet of
// gateways from a sparse append-only transition log plus one per-month
// carry baseline, and answers uptime queries over arbitrary windows.
package uptime

import "time"

// Gateway states. Every stored representation is normalized to these two
// values on read.
const (
	StateDown = 0
	StateUp   = 1
)

// GatewayState is one polled observation for one device, already
// normalized to {0,1} by the telemetry layer.
type GatewayState struct {
	ID       string
	Name     string
	State    int
	LastSeen time.Time
}

// TransitionEvent is a single recorded state change. Immutable once
// appended. Its ordering key is the parsed timestamp, not arrival order:
// the poller can deliver with seconds-level clock skew.
type TransitionEvent struct {
	At        time.Time
	GatewayID string
	State     int
}

// StateInterval is one maximal run of constant state inside a query
// window. Derived during reconstruction, never persisted.
type StateInterval struct {
	From  time.Time
	To    time.Time
	State int
}

// TickResult is what one recording tick produced: the transitions that
// fired (possibly none) and the latest snapshot that was persisted.
type TickResult struct {
	Events   []TransitionEvent
	Snapshot map[string]int
}

// Report is the answer to an uptime query over [Start, End].
type Report struct {
	GatewayID    string
	Start        time.Time
	End          time.Time
	Step         time.Duration
	Intervals    []StateInterval
	Slots        []bool
	UpDuration   time.Duration
	DownDuration time.Duration
	UpFraction   float64
	// Transitions holds the raw events strictly inside (Start, End],
	// chronological. An event exactly at Start is the baseline, not a
	// reportable change; one exactly at End is.
	Transitions []TransitionEvent
}

// transitionLine is the wire shape of one transition-log line. S stays
// untyped on read because legacy logs carry numbers, booleans and strings.
type transitionLine struct {
	T  string `json:"t"`
	GW string `json:"gw"`
	S  any    `json:"s"`
}

// carryDoc is the wire shape of a carry blob.
type carryDoc struct {
	PeriodStart string         `json:"periodStart"`
	State       map[string]any `json:"state"`
}
