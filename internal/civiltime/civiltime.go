// Package civiltime is the single source of truth for how time is
// serialized. All persisted timestamps are wall-clock strings in one fixed
// geographic region, with no numeric offset suffix.
package civiltime

import (
	"fmt"
	"time"
)

// Layout is the exact shape of a persisted civil timestamp.
const Layout = "2006-01-02T15:04:05"

// Region is the fixed reference zone for every persisted timestamp.
var Region = mustLoad("Europe/Lisbon")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("civiltime: load %s: %v", name, err))
	}
	return loc
}

// Encode renders t as a civil timestamp in the fixed region, second
// precision. Decode(Encode(t)) equals t to the second unless t falls in a
// DST discontinuity of the region; that edge is a known limitation of
// storing wall-clock strings and is not compensated here.
func Encode(t time.Time) string {
	return t.In(Region).Format(Layout)
}

// Decode parses a civil timestamp back to an absolute instant. Strings that
// do not match the exact civil shape fall back to generic timestamp parsing
// so that legacy lines written in other formats still resolve.
func Decode(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(Layout, s, Region); err == nil {
		return t, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("civiltime: unparseable timestamp %q", s)
}
