// Package telemetry polls the fleet controller for current gateway states
// and normalizes them to up/down.
package telemetry

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"gatewaymon/internal/uptime"
)

// FallbackTimeout applies when a gateway has no per-device timeout
// configured: a gateway silent for longer than this is down.
const FallbackTimeout = 5 * time.Minute

// Client talks to a ResIOT-style controller API.
type Client struct {
	http *resty.Client
	log  *zap.Logger
	now  func() time.Time
}

func NewClient(baseURL, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Grpc-Metadata-Authorization", token).
		SetHeader("User-Agent", "gatewaymon/1.0")
	return &Client{http: client, log: log, now: time.Now}
}

// gatewayRecord mirrors the controller's wire shape. Timeout stays untyped
// because older controllers send it as a string.
type gatewayRecord struct {
	Name             string `json:"name"`
	Timeout          any    `json:"timeout"`
	LastUplink       string `json:"LastUplink"`
	LastAliveRadio   string `json:"LastAliveRadio"`
	LastAliveMonitor string `json:"LastAliveMonitor"`
}

type gatewayList struct {
	Result []gatewayRecord `json:"result"`
}

// Poll fetches all gateways and derives each one's current state: up iff
// its freshest last-seen timestamp is within the device timeout. Results
// are sorted by name for stable downstream output.
func (c *Client) Poll(ctx context.Context) ([]uptime.GatewayState, error) {
	var list gatewayList
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", "1000").
		SetResult(&list).
		Get("/api/gateways")
	if err != nil {
		return nil, fmt.Errorf("telemetry: fetch gateways: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("telemetry: fetch gateways: status %d", resp.StatusCode())
	}

	now := c.now()
	out := make([]uptime.GatewayState, 0, len(list.Result))
	for _, rec := range list.Result {
		if rec.Name == "" {
			c.log.Warn("gateway_unnamed_skip")
			continue
		}
		timeout := timeoutSeconds(rec.Timeout)

		lastRaw := rec.LastUplink
		if lastRaw == "" {
			lastRaw = rec.LastAliveRadio
		}
		if lastRaw == "" {
			lastRaw = rec.LastAliveMonitor
		}

		state := uptime.StateDown
		lastSeen, ok := parseLastSeen(lastRaw)
		if ok && now.Sub(lastSeen) <= timeout {
			state = uptime.StateUp
		}
		out = append(out, uptime.GatewayState{
			ID:       rec.Name,
			Name:     rec.Name,
			State:    state,
			LastSeen: lastSeen,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func timeoutSeconds(v any) time.Duration {
	var secs float64
	switch t := v.(type) {
	case float64:
		secs = t
	case string:
		secs, _ = strconv.ParseFloat(t, 64)
	}
	if secs <= 0 {
		return FallbackTimeout
	}
	return time.Duration(secs * float64(time.Second))
}

// parseLastSeen handles the controller's last-seen variants: Go-style
// "2006-01-02 15:04:05.999 +0000 UTC" possibly with a monotonic " m=+…"
// suffix, RFC3339, and bare wall-clock strings which are UTC on the wire.
// The zero-value date means never seen.
func parseLastSeen(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, "0001-01-01") {
		return time.Time{}, false
	}
	if i := strings.Index(s, " m="); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999 -0700 MST",
		time.RFC3339Nano,
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05.999999999",
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
