//go:build windows

package keyhook

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/micmonay/keybd_event"
	"golang.org/x/sys/windows"

	"mixkey/log"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

const (
	whKeyboardLL  = 13
	wmKeydown     = 0x0100
	wmKeyup       = 0x0101
	wmSyskeydown  = 0x0104
	wmSyskeyup    = 0x0105
	wmQuit        = 0x0012
	llkhfInjected = 0x10

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
)

type kbdllHookStruct struct {
	VKCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DWExtraInfo uintptr
}

type keydownSub struct {
	handler  func()
	suppress bool
}

// Hook is a WH_KEYBOARD_LL hook running its message loop on a dedicated,
// locked OS thread. Subscribed handlers run synchronously on that thread;
// keeping them fast matters, since Windows silently removes a hook that
// does not return in time.
type Hook struct {
	mu       sync.Mutex
	keydown  map[uint32]keydownSub
	keyup    map[uint32]func()
	threadID uint32
	hhook    uintptr
	closed   bool
	kb       keybd_event.KeyBonding
}

// New installs the low-level keyboard hook and starts its message loop.
func New() (*Hook, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("keyhook: init key injection: %w", err)
	}
	h := &Hook{
		keydown: make(map[uint32]keydownSub),
		keyup:   make(map[uint32]func()),
		kb:      kb,
	}

	errCh := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		h.threadID = windows.GetCurrentThreadId()

		callback := windows.NewCallback(func(nCode, wparam, lparam uintptr) uintptr {
			if int32(nCode) < 0 {
				ret, _, _ := procCallNextHookEx.Call(0, nCode, wparam, lparam)
				return ret
			}
			k := (*kbdllHookStruct)(unsafe.Pointer(lparam))

			// Injected events are our own re-injections (or other synthetic
			// input); letting them through prevents a feedback loop.
			if k.Flags&llkhfInjected != 0 {
				ret, _, _ := procCallNextHookEx.Call(0, nCode, wparam, lparam)
				return ret
			}

			switch uint32(wparam) {
			case wmKeydown, wmSyskeydown:
				h.mu.Lock()
				sub, ok := h.keydown[k.VKCode]
				h.mu.Unlock()
				if ok {
					sub.handler()
					if sub.suppress {
						return 1
					}
				}
			case wmKeyup, wmSyskeyup:
				// Releases are never swallowed: only the press was
				// suppressed, so the system's own key-up must flow.
				h.mu.Lock()
				handler := h.keyup[k.VKCode]
				h.mu.Unlock()
				if handler != nil {
					handler()
				}
			}

			ret, _, _ := procCallNextHookEx.Call(0, nCode, wparam, lparam)
			return ret
		})

		hhook, _, lastErr := procSetWindowsHookExW.Call(whKeyboardLL, callback, 0, 0)
		if hhook == 0 {
			errCh <- fmt.Errorf("keyhook: SetWindowsHookExW: %w", lastErr)
			return
		}
		h.hhook = hhook
		errCh <- nil

		var msg struct {
			HWnd    uintptr
			Message uint32
			WParam  uintptr
			LParam  uintptr
			Time    uint32
			PtX     int32
			PtY     int32
		}
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
			if int32(ret) <= 0 {
				break
			}
		}
		procUnhookWindowsHookEx.Call(hhook)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
	case <-time.After(2 * time.Second):
		return nil, fmt.Errorf("keyhook: timeout installing keyboard hook")
	}
	return h, nil
}

func (h *Hook) SubscribeKeydown(key string, suppress bool, handler func()) error {
	vk, err := vkeyByName(key)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keydown[vk] = keydownSub{handler: handler, suppress: suppress}
	return nil
}

func (h *Hook) SubscribeKeyup(key string, handler func()) error {
	vk, err := vkeyByName(key)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keyup[vk] = handler
	return nil
}

// Pressed reports whether a modifier key is physically held right now.
func (h *Hook) Pressed(modifier string) bool {
	var vk uint32
	switch modifier {
	case "ctrl":
		vk = vkControl
	case "alt":
		vk = vkMenu
	case "shift":
		vk = vkShift
	default:
		return false
	}
	st, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return st&0x8000 != 0
}

// Reinject replays a suppressed key's press as synthetic input. The hook
// ignores injected events, so the replay reaches the system unfiltered.
func (h *Hook) Reinject(key string) {
	vk, err := vkeyByName(key)
	if err != nil {
		log.Warnf("keyhook: reinject %q: %v", key, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.kb.Clear()
	h.kb.SetKeys(int(vk))
	if err := h.kb.Press(); err != nil {
		log.Warnf("keyhook: reinject %q: %v", key, err)
	}
	h.kb.Clear()
}

func (h *Hook) UnsubscribeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keydown = make(map[uint32]keydownSub)
	h.keyup = make(map[uint32]func())
}

// Close stops the message loop and removes the hook. Idempotent.
func (h *Hook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	procPostThreadMessageW.Call(uintptr(h.threadID), wmQuit, 0, 0)
}
