package control

import (
	"testing"

	"mixkey/mixer"
)

func TestVolumeStepAndClamp(t *testing.T) {
	remote := mixer.NewFake()
	var lastNote string
	c := New(remote, 2.0, func(s string) { lastNote = s })
	ch := Channel{Name: "music", Strip: 3}

	if err := c.VolumeUp(ch); err != nil {
		t.Fatal(err)
	}
	if g, _ := remote.Gain(3); g != 2.0 {
		t.Errorf("gain = %v, want 2.0", g)
	}
	if lastNote != "Music: 2.0 dB" {
		t.Errorf("notification = %q", lastNote)
	}

	// Ride the fader into the ceiling.
	for i := 0; i < 20; i++ {
		if err := c.VolumeUp(ch); err != nil {
			t.Fatal(err)
		}
	}
	if g, _ := remote.Gain(3); g != MaxGainDB {
		t.Errorf("gain = %v, want clamped to %v", g, MaxGainDB)
	}

	for i := 0; i < 50; i++ {
		if err := c.VolumeDown(ch); err != nil {
			t.Fatal(err)
		}
	}
	if g, _ := remote.Gain(3); g != MinGainDB {
		t.Errorf("gain = %v, want clamped to %v", g, MinGainDB)
	}
}

func TestToggleMute(t *testing.T) {
	remote := mixer.NewFake()
	var lastNote string
	c := New(remote, 1.0, func(s string) { lastNote = s })
	ch := Channel{Name: "mic", Strip: 0}

	if err := c.ToggleMute(ch); err != nil {
		t.Fatal(err)
	}
	if m, _ := remote.Muted(0); !m {
		t.Error("expected muted after first toggle")
	}
	if lastNote != "Mic: Muted" {
		t.Errorf("notification = %q", lastNote)
	}

	if err := c.ToggleMute(ch); err != nil {
		t.Fatal(err)
	}
	if m, _ := remote.Muted(0); m {
		t.Error("expected unmuted after second toggle")
	}
	if lastNote != "Mic: Unmuted" {
		t.Errorf("notification = %q", lastNote)
	}
}

func TestPausedDoesNothing(t *testing.T) {
	remote := mixer.NewFake()
	notes := 0
	c := New(remote, 1.0, func(string) { notes++ })
	ch := Channel{Name: "music", Strip: 1}

	c.SetPaused(true)
	if err := c.VolumeUp(ch); err != nil {
		t.Fatal(err)
	}
	if err := c.ToggleMute(ch); err != nil {
		t.Fatal(err)
	}
	if g, _ := remote.Gain(1); g != 0 {
		t.Errorf("paused controller changed gain to %v", g)
	}
	if m, _ := remote.Muted(1); m {
		t.Error("paused controller muted channel")
	}
	if notes != 0 {
		t.Errorf("paused controller sent %d notifications", notes)
	}

	c.SetPaused(false)
	if err := c.VolumeUp(ch); err != nil {
		t.Fatal(err)
	}
	if g, _ := remote.Gain(1); g != 1.0 {
		t.Errorf("resumed controller gain = %v, want 1.0", g)
	}
}

func TestActionFactory(t *testing.T) {
	remote := mixer.NewFake()
	c := New(remote, 1.0, nil)
	ch := Channel{Name: "music", Strip: 2}

	for _, name := range []string{"up", "down", "mute"} {
		act, err := c.Action(name, ch)
		if err != nil {
			t.Fatalf("Action(%q): %v", name, err)
		}
		if err := act(); err != nil {
			t.Fatalf("invoke %q: %v", name, err)
		}
	}
	if _, err := c.Action("solo", ch); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRemoteErrorPropagates(t *testing.T) {
	remote := mixer.NewFake()
	c := New(remote, 1.0, nil)
	remote.FailNext = true
	if err := c.VolumeUp(Channel{Name: "music", Strip: 0}); err == nil {
		t.Error("expected error from failing remote")
	}
}
