package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gatewaymon/internal/civiltime"
	"gatewaymon/internal/uptime"
)

func TestFormatStatusTable(t *testing.T) {
	rows := []StatusRow{
		{Name: "Gateway Norte", When: "10-09-2025 12:00", Up: true},
		{Name: "GW-S", When: "09-09-2025 23:11", Up: false},
	}

	all := FormatStatusTable(rows, FilterAll)
	require.True(t, strings.HasPrefix(all, "<pre>"))
	require.Contains(t, all, "Gateway Norte")
	require.Contains(t, all, "✅")
	require.Contains(t, all, "❌")

	up := FormatStatusTable(rows, FilterUp)
	require.Contains(t, up, "Gateway Norte")
	require.NotContains(t, up, "GW-S")

	down := FormatStatusTable(rows, FilterDown)
	require.Contains(t, down, "GW-S")
	require.NotContains(t, down, "Gateway Norte")

	require.Equal(t, "<i>(no data)</i>", FormatStatusTable(nil, FilterAll))
	require.Equal(t, "<i>(no data)</i>", FormatStatusTable(rows[:1], FilterDown))
}

func TestFormatStatusTable_AlignsColumns(t *testing.T) {
	rows := []StatusRow{
		{Name: "A", When: "x", Up: true},
		{Name: "Longer Name", When: "yy", Up: false},
	}
	table := FormatStatusTable(rows, FilterAll)
	body := strings.TrimSuffix(strings.TrimPrefix(table, "<pre>"), "</pre>")
	lines := strings.Split(body, "\n")
	require.Len(t, lines, 4) // header, separator, two rows
	first := strings.Index(lines[0], "|")
	for _, l := range lines[2:] {
		require.Equal(t, first, strings.Index(l, "|"), "misaligned row %q", l)
	}
}

func TestSplitChunks(t *testing.T) {
	require.Equal(t, []string{""}, SplitChunks("", 10))
	require.Equal(t, []string{"short"}, SplitChunks("short", 10))

	chunks := SplitChunks(strings.Repeat("x", 25), 10)
	require.Len(t, chunks, 3)
	require.Equal(t, 10, len(chunks[0]))
	require.Equal(t, 5, len(chunks[2]))
}

func TestFormatUptimeReport(t *testing.T) {
	start := time.Date(2025, 9, 10, 0, 0, 0, 0, civiltime.Region)
	end := start.Add(24 * time.Hour)
	noon := start.Add(12 * time.Hour)
	rep := &uptime.Report{
		GatewayID: "gw-1",
		Start:     start,
		End:       end,
		Intervals: []uptime.StateInterval{
			{From: start, To: noon, State: uptime.StateUp},
			{From: noon, To: end, State: uptime.StateDown},
		},
		Slots:        []bool{true, false},
		UpDuration:   12 * time.Hour,
		DownDuration: 12 * time.Hour,
		UpFraction:   0.5,
		Transitions: []uptime.TransitionEvent{
			{At: noon, GatewayID: "gw-1", State: uptime.StateDown},
		},
	}

	out := FormatUptimeReport("Gateway Norte", rep)
	require.Contains(t, out, "Gateway Norte")
	require.Contains(t, out, "50.00%")
	require.Contains(t, out, "#.")
	require.Contains(t, out, "2025-09-10T12:00:00")
	require.Contains(t, out, "offline")

	rep.Transitions = nil
	out = FormatUptimeReport("Gateway Norte", rep)
	require.Contains(t, out, "Sem transições")
}

func TestFormatUptimeReport_NewestFirst(t *testing.T) {
	start := time.Date(2025, 9, 10, 0, 0, 0, 0, civiltime.Region)
	rep := &uptime.Report{
		Start: start,
		End:   start.Add(24 * time.Hour),
		Transitions: []uptime.TransitionEvent{
			{At: start.Add(6 * time.Hour), State: uptime.StateDown},
			{At: start.Add(9 * time.Hour), State: uptime.StateUp},
		},
	}
	out := FormatUptimeReport("gw", rep)
	later := strings.Index(out, "09:00:00")
	earlier := strings.Index(out, "06:00:00")
	require.Greater(t, earlier, later, "transitions must render newest first")
}

func TestRasterStrip(t *testing.T) {
	require.Equal(t, "##..#", RasterStrip([]bool{true, true, false, false, true}))
	require.Equal(t, "", RasterStrip(nil))
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "3d 4h 12m", FormatDuration(3*24*time.Hour+4*time.Hour+12*time.Minute))
	require.Equal(t, "45s", FormatDuration(45*time.Second))
	require.Equal(t, "2m 30s", FormatDuration(150*time.Second))
	require.Equal(t, "1h", FormatDuration(time.Hour))
	require.Equal(t, "0s", FormatDuration(0))
	require.Equal(t, "0s", FormatDuration(-time.Minute))
}

func TestEscapeHTML(t *testing.T) {
	require.Equal(t, "a &amp;&lt;b&gt; c", EscapeHTML("a &<b> c"))
}
