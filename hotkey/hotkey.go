// Package hotkey turns raw key press/release events from an OS keyboard
// hook into de-duplicated action invocations, with a delay-then-interval
// auto-repeat while a combo stays held.
//
// A combo is one (main key, modifier set) pair and is the unit of state
// tracking. If the user changes which modifiers are held while the main
// key stays physically down, each delivered key-down resolves against the
// live modifier state independently, so the new combo fires a fresh
// initial press. That is intended behavior.
package hotkey

import (
	"sync"
	"time"

	"mixkey/log"
)

// Source delivers key events and modifier state from the OS keyboard hook.
// SubscribeKeydown with suppress=true must prevent the key's default system
// effect; Reinject replays that default effect for events the handler
// decided not to consume.
type Source interface {
	SubscribeKeydown(key string, suppress bool, handler func()) error
	SubscribeKeyup(key string, handler func()) error
	Pressed(modifier string) bool
	Reinject(key string)
	UnsubscribeAll()
}

// Action is a bound unit of work. It carries its own fixed arguments; the
// handler invokes it with none and only inspects the returned error.
type Action func() error

const (
	DefaultRepeatDelay    = 500 * time.Millisecond
	DefaultRepeatInterval = 100 * time.Millisecond
)

// keyState tracks press/repeat timing for one combo. Records are created
// lazily on first press and reset, never deleted, on release.
type keyState struct {
	isDown        bool
	lastTrigger   time.Time
	repeatStarted bool
}

// Handler owns the binding table and all per-combo state. All dispatch
// runs under one mutex: the hook may deliver from a dedicated OS thread,
// and every field of a combo's state changes together.
type Handler struct {
	src      Source
	table    map[string][]Binding
	delay    time.Duration
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	states  map[string]*keyState
	stopped bool
}

// New builds the binding table from bindings, subscribes press (suppressed)
// and release events for every distinct main key, and returns the running
// handler. It fails with *DuplicateBindingError when two bindings collide
// on the same (main key, modifier set). Zero durations fall back to
// DefaultRepeatDelay and DefaultRepeatInterval.
func New(src Source, bindings []Binding, repeatDelay, repeatInterval time.Duration) (*Handler, error) {
	if repeatDelay <= 0 {
		repeatDelay = DefaultRepeatDelay
	}
	if repeatInterval <= 0 {
		repeatInterval = DefaultRepeatInterval
	}

	h := &Handler{
		src:      src,
		table:    make(map[string][]Binding),
		delay:    repeatDelay,
		interval: repeatInterval,
		now:      time.Now,
		states:   make(map[string]*keyState),
	}

	seen := make(map[string]struct{})
	for _, b := range bindings {
		b.Modifiers = canonMods(b.Modifiers)
		ck := comboKey(b.Key, b.Modifiers)
		if _, dup := seen[ck]; dup {
			return nil, &DuplicateBindingError{Key: b.Key, Modifiers: b.Modifiers}
		}
		seen[ck] = struct{}{}
		h.table[b.Key] = append(h.table[b.Key], b)
	}

	for key := range h.table {
		key := key
		if err := src.SubscribeKeydown(key, true, func() { h.onKeydown(key) }); err != nil {
			src.UnsubscribeAll()
			return nil, err
		}
		if err := src.SubscribeKeyup(key, func() { h.onKeyup(key) }); err != nil {
			src.UnsubscribeAll()
			return nil, err
		}
	}
	return h, nil
}

// currentModifiers returns the live subset of the modifier vocabulary in
// canonical order. Modifiers is sorted, so iterating it keeps the result
// order-independent of press order.
func (h *Handler) currentModifiers() []string {
	var mods []string
	for _, m := range Modifiers {
		if h.src.Pressed(m) {
			mods = append(mods, m)
		}
	}
	return mods
}

func (h *Handler) lookup(key string, mods []string) *Binding {
	for i := range h.table[key] {
		if sameMods(h.table[key][i].Modifiers, mods) {
			return &h.table[key][i]
		}
	}
	return nil
}

func (h *Handler) onKeydown(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}

	mods := h.currentModifiers()
	b := h.lookup(key, mods)
	if b == nil {
		// No binding for this combo: replay the suppressed default effect
		// and leave all state untouched.
		h.src.Reinject(key)
		return
	}

	now := h.now()
	ck := comboKey(key, mods)
	st := h.states[ck]
	if st == nil {
		st = &keyState{}
		h.states[ck] = st
	}

	switch {
	case !st.isDown:
		st.isDown = true
		st.repeatStarted = false
		st.lastTrigger = now
		h.invoke(b, ck)
	case !st.repeatStarted:
		// The OS keeps delivering key-downs while the key is held;
		// swallow them until the repeat delay has elapsed.
		if now.Sub(st.lastTrigger) >= h.delay {
			st.repeatStarted = true
			st.lastTrigger = now
			h.invoke(b, ck)
		}
	default:
		if now.Sub(st.lastTrigger) >= h.interval {
			st.lastTrigger = now
			h.invoke(b, ck)
		}
	}
}

func (h *Handler) onKeyup(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	// Unbound combos never created a record, and their release was never
	// suppressed, so there is nothing to re-inject here.
	if st := h.states[comboKey(key, h.currentModifiers())]; st != nil {
		st.isDown = false
		st.repeatStarted = false
	}
}

// invoke runs the action at the hook boundary: a failing or panicking
// action is logged and must never escape into the hook's invocation
// context, so one bad action cannot disable the remaining hotkeys.
func (h *Handler) invoke(b *Binding, combo string) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("hotkey %s: action panic: %v", combo, r)
		}
	}()
	if err := b.Action(); err != nil {
		log.Errorf("hotkey %s: action failed: %v", combo, err)
	}
}

// Stop unsubscribes everything from the Source. Idempotent; after Stop no
// further actions are invoked even if the hook still drains buffered events.
func (h *Handler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	h.src.UnsubscribeAll()
}
