package hotkey

import "sync"

// FakeSource is an in-memory Source for tests and headless runs. Sim
// methods deliver events synchronously on the calling goroutine, the same
// way a real hook delivers on its message-loop thread.
type FakeSource struct {
	mu         sync.Mutex
	keydown    map[string]func()
	keyup      map[string]func()
	suppressed map[string]bool
	pressed    map[string]bool
	reinjected []string
}

func NewFakeSource() *FakeSource {
	return &FakeSource{
		keydown:    make(map[string]func()),
		keyup:      make(map[string]func()),
		suppressed: make(map[string]bool),
		pressed:    make(map[string]bool),
	}
}

func (f *FakeSource) SubscribeKeydown(key string, suppress bool, handler func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keydown[key] = handler
	f.suppressed[key] = suppress
	return nil
}

func (f *FakeSource) SubscribeKeyup(key string, handler func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keyup[key] = handler
	return nil
}

func (f *FakeSource) Pressed(modifier string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pressed[modifier]
}

func (f *FakeSource) Reinject(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reinjected = append(f.reinjected, key)
}

func (f *FakeSource) UnsubscribeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keydown = make(map[string]func())
	f.keyup = make(map[string]func())
	f.suppressed = make(map[string]bool)
}

// SetPressed sets a modifier's simulated physical state.
func (f *FakeSource) SetPressed(modifier string, down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pressed[modifier] = down
}

// SimKeydown delivers a key-down to the subscribed handler, if any.
func (f *FakeSource) SimKeydown(key string) {
	f.mu.Lock()
	handler := f.keydown[key]
	f.mu.Unlock()
	if handler != nil {
		handler()
	}
}

// SimKeyup delivers a key-up to the subscribed handler, if any.
func (f *FakeSource) SimKeyup(key string) {
	f.mu.Lock()
	handler := f.keyup[key]
	f.mu.Unlock()
	if handler != nil {
		handler()
	}
}

// Reinjected returns the keys replayed so far, in delivery order.
func (f *FakeSource) Reinjected() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reinjected...)
}

// Subscribed reports whether key has an active key-down subscription.
func (f *FakeSource) Subscribed(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.keydown[key] != nil
}

// SuppressedKeydown reports whether key's key-down subscription asked the
// hook to swallow the default effect.
func (f *FakeSource) SuppressedKeydown(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suppressed[key]
}
