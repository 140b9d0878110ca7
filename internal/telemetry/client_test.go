package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gatewaymon/internal/uptime"
)

func TestPoll_StateFromLastSeenAge(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/gateways", r.URL.Path)
		require.Equal(t, "1000", r.URL.Query().Get("limit"))
		require.Equal(t, "secret-token", r.Header.Get("Grpc-Metadata-Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":[
			{"name":"gw-fresh","timeout":600,"LastUplink":"2025-09-10 11:55:00 +0000 UTC m=+812.33"},
			{"name":"gw-stale","timeout":600,"LastUplink":"2025-09-10 11:00:00 +0000 UTC"},
			{"name":"gw-default-timeout","LastAliveRadio":"2025-09-10T11:58:30Z"},
			{"name":"gw-never","LastUplink":"0001-01-01 00:00:00 +0000 UTC"},
			{"name":"gw-string-timeout","timeout":"120","LastAliveMonitor":"2025-09-10 11:59:00"},
			{"name":""}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token", zap.NewNop())
	c.now = func() time.Time { return now }

	states, err := c.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 5) // the unnamed record is skipped

	byID := map[string]uptime.GatewayState{}
	for _, s := range states {
		byID[s.ID] = s
	}
	require.Equal(t, uptime.StateUp, byID["gw-fresh"].State)
	require.Equal(t, uptime.StateDown, byID["gw-stale"].State)
	require.Equal(t, uptime.StateUp, byID["gw-default-timeout"].State) // 90s old vs 5m fallback
	require.Equal(t, uptime.StateDown, byID["gw-never"].State)
	require.True(t, byID["gw-never"].LastSeen.IsZero())
	require.Equal(t, uptime.StateUp, byID["gw-string-timeout"].State)

	// Sorted by name.
	for i := 1; i < len(states); i++ {
		require.Less(t, states[i-1].Name, states[i].Name)
	}
}

func TestPoll_SurfacesHTTPFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", zap.NewNop())
	_, err := c.Poll(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestParseLastSeen(t *testing.T) {
	got, ok := parseLastSeen("2025-09-10 11:55:00 +0000 UTC m=+812.330")
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 9, 10, 11, 55, 0, 0, time.UTC).Unix(), got.Unix())

	got, ok = parseLastSeen("2025-09-10T11:58:30Z")
	require.True(t, ok)
	require.Equal(t, 30, got.Second())

	_, ok = parseLastSeen("")
	require.False(t, ok)
	_, ok = parseLastSeen("0001-01-01 00:00:00 +0000 UTC")
	require.False(t, ok)
	_, ok = parseLastSeen("gibberish")
	require.False(t, ok)
}

func TestTimeoutSeconds(t *testing.T) {
	require.Equal(t, 10*time.Minute, timeoutSeconds(float64(600)))
	require.Equal(t, 2*time.Minute, timeoutSeconds("120"))
	require.Equal(t, FallbackTimeout, timeoutSeconds(nil))
	require.Equal(t, FallbackTimeout, timeoutSeconds(float64(0)))
	require.Equal(t, FallbackTimeout, timeoutSeconds("junk"))
}
