// Package report renders reconstruction results and fleet status as
// monospace chat messages.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gatewaymon/internal/civiltime"
	"gatewaymon/internal/uptime"
)

// TelegramMax is the hard message size limit; ChunkLimit leaves headroom
// for the HTML wrapping added around table bodies.
const (
	TelegramMax = 4096
	ChunkLimit  = TelegramMax - 600
)

// Filter selects which rows a status table shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterUp
	FilterDown
)

// StatusRow is one gateway line in the fleet status table.
type StatusRow struct {
	Name string
	When string
	Up   bool
}

// EscapeHTML escapes the three characters Telegram's HTML mode reserves.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// SplitChunks cuts s into pieces of at most max bytes. Always returns at
// least one piece so a caller can reply with something.
func SplitChunks(s string, max int) []string {
	if max <= 0 || len(s) <= max {
		return []string{s}
	}
	var out []string
	for len(s) > max {
		out = append(out, s[:max])
		s = s[max:]
	}
	return append(out, s)
}

// FormatStatusTable renders the fleet as an aligned name/when/state table
// inside <pre> tags. Column widths follow the data.
func FormatStatusTable(rows []StatusRow, filter Filter) string {
	filtered := rows[:0:0]
	for _, r := range rows {
		switch filter {
		case FilterUp:
			if !r.Up {
				continue
			}
		case FilterDown:
			if r.Up {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	if len(filtered) == 0 {
		return "<i>(no data)</i>"
	}

	const hName, hWhen, hState = "Nome", "Quando", "Ok"
	nameW, whenW := len(hName), len(hWhen)
	for _, r := range filtered {
		if n := utf8.RuneCountInString(r.Name); n > nameW {
			nameW = n
		}
		if n := utf8.RuneCountInString(r.When); n > whenW {
			whenW = n
		}
	}

	var b strings.Builder
	b.WriteString(padRight(hName, nameW) + "|" + padRight(hWhen, whenW) + "|" + hState + "\n")
	b.WriteString(strings.Repeat("-", nameW) + "+" + strings.Repeat("-", whenW) + "+" + strings.Repeat("-", len(hState)))
	for _, r := range filtered {
		mark := "❌"
		if r.Up {
			mark = "✅"
		}
		b.WriteString("\n" + padRight(r.Name, nameW) + "|" + padRight(r.When, whenW) + "|" + mark)
	}
	return "<pre>" + EscapeHTML(b.String()) + "</pre>"
}

// FormatUptimeReport renders one gateway's reconstructed window: exact
// percentage, durations, a raster strip, and the transitions newest first.
func FormatUptimeReport(displayName string, rep *uptime.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>⏱ %s</b>\n", EscapeHTML(displayName))
	fmt.Fprintf(&b, "Janela: %s → %s\n", civiltime.Encode(rep.Start), civiltime.Encode(rep.End))
	fmt.Fprintf(&b, "Online: %.2f%% (%s online, %s offline)\n",
		rep.UpFraction*100, FormatDuration(rep.UpDuration), FormatDuration(rep.DownDuration))
	if len(rep.Slots) > 0 {
		fmt.Fprintf(&b, "<pre>%s</pre>\n", RasterStrip(rep.Slots))
	}
	if len(rep.Transitions) == 0 {
		b.WriteString("<i>Sem transições nesta janela.</i>")
		return b.String()
	}

	b.WriteString("Transições (mais recente primeiro):\n<pre>")
	for i := len(rep.Transitions) - 1; i >= 0; i-- {
		ev := rep.Transitions[i]
		mark, label := "❌", "offline"
		if ev.State == uptime.StateUp {
			mark, label = "✅", "online"
		}
		fmt.Fprintf(&b, "%s  %s %s", civiltime.Encode(ev.At), mark, label)
		if i > 0 {
			b.WriteByte('\n')
		}
	}
	b.WriteString("</pre>")
	return b.String()
}

// RasterStrip draws the boolean slots as a coarse strip, '#' up, '.' down.
func RasterStrip(slots []bool) string {
	var b strings.Builder
	for _, up := range slots {
		if up {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// FormatDuration renders a duration as the largest useful units, e.g.
// "3d 4h 12m" or "45s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	mins := d / time.Minute
	secs := (d - mins*time.Minute) / time.Second

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	if len(parts) == 0 || (days == 0 && hours == 0 && secs > 0) {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}

// padRight pads by rune count; accented gateway names must still align.
func padRight(s string, w int) string {
	if d := w - utf8.RuneCountInString(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
