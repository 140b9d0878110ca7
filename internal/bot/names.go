package bot

import (
	"encoding/json"
	"strings"
)

// Names maps controller gateway codes to human display names. Built once
// at startup from configuration; unknown codes display as themselves.
type Names struct {
	byCode map[string]string
}

// ParseNames tolerates an empty or malformed JSON document the same way
// the deployment always has: nobody gets a display name.
func ParseNames(raw string) *Names {
	m := map[string]string{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &m)
	}
	return &Names{byCode: m}
}

// Display returns the human name for a code, or the code itself.
func (n *Names) Display(code string) string {
	if name, ok := n.byCode[code]; ok && name != "" {
		return name
	}
	return code
}

// Resolve maps user input (code or display name, case-insensitive) back to
// a gateway code. Unmatched input is returned as-is so unmapped gateways
// stay queryable.
func (n *Names) Resolve(input string) string {
	needle := strings.ToLower(strings.TrimSpace(input))
	for code, name := range n.byCode {
		if strings.ToLower(code) == needle || strings.ToLower(name) == needle {
			return code
		}
	}
	return strings.TrimSpace(input)
}
