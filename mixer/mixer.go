// Package mixer binds the Voicemeeter Remote API.
package mixer

// Remote is a live connection to the mixer. Strip indexes follow the
// mixer's own numbering; the config file maps channel names onto them.
type Remote interface {
	Login() error
	Logout() error

	// Dirty polls for parameter changes made outside this process. The
	// underlying API refreshes its parameter cache on this call, so it
	// should be polled before reads.
	Dirty() bool

	Gain(strip int) (float64, error)
	SetGain(strip int, db float64) error
	Muted(strip int) (bool, error)
	SetMute(strip int, mute bool) error
}
