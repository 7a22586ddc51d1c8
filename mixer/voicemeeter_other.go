//go:build !windows

package mixer

import "errors"

// New fails on non-Windows platforms; the Voicemeeter Remote API is a
// Windows DLL. Use NewFake for development and tests.
func New() (Remote, error) {
	return nil, errors.New("mixer: voicemeeter remote API is only available on windows")
}
