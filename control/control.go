// Package control applies hotkey actions to mixer channels: stepped gain
// changes with the mixer's hard limits, and mute toggling. Every change
// produces a short feedback line for the on-screen notifier.
package control

import (
	"fmt"
	"strings"
	"sync"

	"mixkey/log"
	"mixkey/mixer"
)

// Gain limits of a mixer strip fader, in dB.
const (
	MaxGainDB = 12.0
	MinGainDB = -60.0
)

// Channel names one configured mixer strip.
type Channel struct {
	Name  string
	Strip int
}

// Controller translates channel actions into mixer calls. Safe for use
// from the hook delivery thread and the tray menu concurrently.
type Controller struct {
	remote mixer.Remote
	step   float64
	notify func(text string)

	mu     sync.Mutex
	paused bool
}

// New builds a Controller stepping gain by step dB per trigger. notify
// receives the user-facing feedback line for every applied change; it may
// be nil.
func New(remote mixer.Remote, step float64, notify func(string)) *Controller {
	if notify == nil {
		notify = func(string) {}
	}
	return &Controller{remote: remote, step: step, notify: notify}
}

// SetPaused suspends or resumes the controller. While paused, actions
// return nil without touching the mixer.
func (c *Controller) SetPaused(on bool) {
	c.mu.Lock()
	c.paused = on
	c.mu.Unlock()
	if on {
		log.Info("controller paused")
	} else {
		log.Info("controller resumed")
	}
}

func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Action returns the bound action for a config action name. The returned
// closure carries the channel; the dispatch engine invokes it with no
// further arguments.
func (c *Controller) Action(name string, ch Channel) (func() error, error) {
	switch name {
	case "up":
		return func() error { return c.VolumeUp(ch) }, nil
	case "down":
		return func() error { return c.VolumeDown(ch) }, nil
	case "mute":
		return func() error { return c.ToggleMute(ch) }, nil
	default:
		return nil, fmt.Errorf("control: unknown action %q for channel %s", name, ch.Name)
	}
}

func (c *Controller) VolumeUp(ch Channel) error {
	return c.adjust(ch, c.step, "up")
}

func (c *Controller) VolumeDown(ch Channel) error {
	return c.adjust(ch, -c.step, "down")
}

func (c *Controller) adjust(ch Channel, delta float64, action string) error {
	if c.Paused() {
		return nil
	}
	// Polling the dirty flag refreshes the remote's parameter cache so the
	// read below reflects changes made in the mixer UI.
	c.remote.Dirty()

	gain, err := c.remote.Gain(ch.Strip)
	if err != nil {
		return err
	}
	gain = clamp(gain + delta)
	if err := c.remote.SetGain(ch.Strip, gain); err != nil {
		return err
	}
	text := fmt.Sprintf("%s: %.1f dB", title(ch.Name), gain)
	c.notify(text)
	log.Trigger(ch.Name, action, text)
	return nil
}

func (c *Controller) ToggleMute(ch Channel) error {
	if c.Paused() {
		return nil
	}
	c.remote.Dirty()

	muted, err := c.remote.Muted(ch.Strip)
	if err != nil {
		return err
	}
	muted = !muted
	if err := c.remote.SetMute(ch.Strip, muted); err != nil {
		return err
	}
	status := "Unmuted"
	if muted {
		status = "Muted"
	}
	text := fmt.Sprintf("%s: %s", title(ch.Name), status)
	c.notify(text)
	log.Trigger(ch.Name, "mute", text)
	return nil
}

func clamp(db float64) float64 {
	if db > MaxGainDB {
		return MaxGainDB
	}
	if db < MinGainDB {
		return MinGainDB
	}
	return db
}

func title(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
