//go:build windows

package mixer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"mixkey/log"
)

type remote struct {
	mu  sync.Mutex
	dll *windows.LazyDLL

	procLogin             *windows.LazyProc
	procLogout            *windows.LazyProc
	procIsParametersDirty *windows.LazyProc
	procGetParameterFloat *windows.LazyProc
	procSetParameters     *windows.LazyProc
}

// New locates VoicemeeterRemote64.dll and binds the entry points the
// controller uses. The connection is established by Login.
func New() (Remote, error) {
	path, err := dllPath()
	if err != nil {
		return nil, err
	}
	dll := windows.NewLazyDLL(path)
	if err := dll.Load(); err != nil {
		return nil, fmt.Errorf("mixer: load %s: %w", path, err)
	}
	r := &remote{
		dll:                   dll,
		procLogin:             dll.NewProc("VBVMR_Login"),
		procLogout:            dll.NewProc("VBVMR_Logout"),
		procIsParametersDirty: dll.NewProc("VBVMR_IsParametersDirty"),
		procGetParameterFloat: dll.NewProc("VBVMR_GetParameterFloat"),
		procSetParameters:     dll.NewProc("VBVMR_SetParameters"),
	}
	return r, nil
}

func dllPath() (string, error) {
	candidates := []string{
		filepath.Join(os.Getenv("ProgramFiles(x86)"), "VB", "Voicemeeter", "VoicemeeterRemote64.dll"),
		filepath.Join(os.Getenv("ProgramFiles"), "VB", "Voicemeeter", "VoicemeeterRemote64.dll"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("mixer: VoicemeeterRemote64.dll not found (is Voicemeeter installed?)")
}

func cstr(s string) []byte {
	return append([]byte(s), 0)
}

func (r *remote) Login() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret, _, _ := r.procLogin.Call()
	switch int32(ret) {
	case 0:
	case 1:
		// Connected to the server but the Voicemeeter app is not running.
		log.Warn("mixer: voicemeeter application not running")
	default:
		return fmt.Errorf("mixer: login failed (code %d)", int32(ret))
	}
	// Drain the initial dirty flag so the first read sees fresh state.
	r.dirtyLocked()
	return nil
}

func (r *remote) Logout() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ret, _, _ := r.procLogout.Call(); int32(ret) != 0 {
		return fmt.Errorf("mixer: logout failed (code %d)", int32(ret))
	}
	return nil
}

func (r *remote) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dirtyLocked()
}

func (r *remote) dirtyLocked() bool {
	ret, _, _ := r.procIsParametersDirty.Call()
	return int32(ret) > 0
}

func (r *remote) getFloat(name string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := cstr(name)
	var val float32
	ret, _, _ := r.procGetParameterFloat.Call(
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&val)),
	)
	if int32(ret) != 0 {
		return 0, fmt.Errorf("mixer: get %s failed (code %d)", name, int32(ret))
	}
	return float64(val), nil
}

// setParameters runs a parameter script ("Strip[0].Gain=-12.5"). Scripts
// sidestep the float-by-value calling convention the raw setter needs.
func (r *remote) setParameters(script string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := cstr(script)
	ret, _, _ := r.procSetParameters.Call(uintptr(unsafe.Pointer(&buf[0])))
	if int32(ret) != 0 {
		return fmt.Errorf("mixer: set %q failed (code %d)", script, int32(ret))
	}
	return nil
}

func (r *remote) Gain(strip int) (float64, error) {
	return r.getFloat(fmt.Sprintf("Strip[%d].Gain", strip))
}

func (r *remote) SetGain(strip int, db float64) error {
	return r.setParameters(fmt.Sprintf("Strip[%d].Gain=%.1f", strip, db))
}

func (r *remote) Muted(strip int) (bool, error) {
	v, err := r.getFloat(fmt.Sprintf("Strip[%d].Mute", strip))
	if err != nil {
		return false, err
	}
	return v > 0.5, nil
}

func (r *remote) SetMute(strip int, mute bool) error {
	v := 0
	if mute {
		v = 1
	}
	return r.setParameters(fmt.Sprintf("Strip[%d].Mute=%d", strip, v))
}
