package hotkey

import (
	"fmt"
	"slices"
	"strings"
)

// Modifiers is the modifier vocabulary, in canonical (lexicographic) order.
var Modifiers = []string{"alt", "ctrl", "shift"}

// Binding is one configured shortcut: a non-modifier main key, the exact
// modifier set that must be held with it, and the action to invoke.
type Binding struct {
	Key       string
	Modifiers []string
	Action    Action
}

// DuplicateBindingError reports two bindings colliding on the same
// (main key, modifier set). Duplicates are a configuration error and are
// rejected at construction, never silently resolved.
type DuplicateBindingError struct {
	Key       string
	Modifiers []string
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("duplicate binding for %s", comboKey(e.Key, e.Modifiers))
}

// canonMods lowercases, deduplicates, and sorts a modifier set so equality
// comparison is independent of configuration order.
func canonMods(mods []string) []string {
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

func sameMods(a, b []string) bool {
	return slices.Equal(a, b)
}

func comboKey(key string, mods []string) string {
	if len(mods) == 0 {
		return key
	}
	return strings.Join(mods, "+") + "+" + key
}

// ParseSpec parses a shortcut spec like "ctrl+shift+f13" into its main key
// and canonical modifier set. The last "+"-separated token is the main key;
// every preceding token must name a known modifier ("control" is accepted
// as an alias for "ctrl").
func ParseSpec(spec string) (key string, mods []string, err error) {
	parts := strings.Split(spec, "+")
	key = strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if key == "" {
		return "", nil, fmt.Errorf("hotkey spec %q has no main key", spec)
	}
	for _, tok := range parts[:len(parts)-1] {
		m := strings.ToLower(strings.TrimSpace(tok))
		if m == "control" {
			m = "ctrl"
		}
		if !slices.Contains(Modifiers, m) {
			return "", nil, fmt.Errorf("hotkey spec %q: unknown modifier %q", spec, tok)
		}
		mods = append(mods, m)
	}
	return key, canonMods(mods), nil
}
