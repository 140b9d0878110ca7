package uptime

import "strings"

// NormalizeState maps any stored state representation to {0,1}. Older logs
// and snapshots carry numbers, booleans and strings ("OK"/"NOK", "up",
// "true"); everything current writes plain 0/1. Returns false for values
// that resolve to neither state.
func NormalizeState(v any) (int, bool) {
	switch s := v.(type) {
	case int:
		return boolToState(s != 0), true
	case int64:
		return boolToState(s != 0), true
	case float64:
		return boolToState(s != 0), true
	case bool:
		return boolToState(s), true
	case string:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "ok", "true", "up":
			return StateUp, true
		case "0", "nok", "false", "down":
			return StateDown, true
		}
	}
	return StateDown, false
}

func boolToState(up bool) int {
	if up {
		return StateUp
	}
	return StateDown
}
