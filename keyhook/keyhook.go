// Package keyhook installs the OS keyboard hook that feeds the hotkey
// dispatch engine. It delivers per-key press/release callbacks, answers
// live modifier-state queries, and can replay a suppressed key's default
// effect. Only Windows has a real implementation; other platforms get a
// constructor that fails.
package keyhook
