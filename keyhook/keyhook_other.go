//go:build !windows

package keyhook

import "errors"

type Hook struct{}

// New fails on non-Windows platforms: there is no low-level keyboard hook
// to install here.
func New() (*Hook, error) {
	return nil, errors.New("keyhook: global keyboard hook is only supported on windows")
}

func (h *Hook) SubscribeKeydown(key string, suppress bool, handler func()) error { return nil }
func (h *Hook) SubscribeKeyup(key string, handler func()) error                  { return nil }
func (h *Hook) Pressed(modifier string) bool                                     { return false }
func (h *Hook) Reinject(key string)                                              {}
func (h *Hook) UnsubscribeAll()                                                  {}
func (h *Hook) Close()                                                           {}
