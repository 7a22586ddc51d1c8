package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mixkey/config"
	"mixkey/control"
	"mixkey/hotkey"
	"mixkey/mixer"
)

func loadTestConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestBuildBindings(t *testing.T) {
	cfg := loadTestConfig(t, `
channels:
  music: 0
  mic: 2
hotkeys:
  music:
    up: ctrl+shift+f13
    down: ctrl+shift+f14
    mute:
      - ctrl+shift+f15
      - ctrl+alt+m
  mic:
    mute: ctrl+shift+f16
`)
	ctl := control.New(mixer.NewFake(), 1.0, nil)

	bindings, err := buildBindings(cfg, ctl)
	if err != nil {
		t.Fatal(err)
	}
	if len(bindings) != 5 {
		t.Fatalf("got %d bindings, want 5", len(bindings))
	}
	// Sorted walk: mic before music, down/mute/up within a channel.
	if bindings[0].Key != "f16" {
		t.Errorf("first binding key = %q, want f16", bindings[0].Key)
	}
}

func TestBuildBindingsBadSpec(t *testing.T) {
	cfg := loadTestConfig(t, `
channels:
  music: 0
hotkeys:
  music:
    up: hyper+f13
`)
	ctl := control.New(mixer.NewFake(), 1.0, nil)
	if _, err := buildBindings(cfg, ctl); err == nil {
		t.Fatal("expected error for unknown modifier")
	}
}

// End to end: config through dispatch engine down to the fake mixer.
func TestHotkeyDrivesMixer(t *testing.T) {
	cfg := loadTestConfig(t, `
channels:
  music: 3
settings:
  volume_step: 2.0
hotkeys:
  music:
    up: ctrl+f13
    mute: ctrl+shift+f13
`)
	remote := mixer.NewFake()
	ctl := control.New(remote, cfg.Settings.VolumeStep, nil)
	bindings, err := buildBindings(cfg, ctl)
	if err != nil {
		t.Fatal(err)
	}

	src := hotkey.NewFakeSource()
	h, err := hotkey.New(src, bindings, cfg.RepeatDelay(), cfg.RepeatInterval())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Stop()

	src.SetPressed("ctrl", true)
	src.SimKeydown("f13")
	src.SimKeyup("f13")
	if g, _ := remote.Gain(3); g != 2.0 {
		t.Errorf("gain = %v, want 2.0", g)
	}

	src.SetPressed("shift", true)
	src.SimKeydown("f13")
	src.SimKeyup("f13")
	if m, _ := remote.Muted(3); !m {
		t.Error("expected channel muted via ctrl+shift+f13")
	}
}

func TestDuplicateConfigSurfacesAtConstruction(t *testing.T) {
	cfg := loadTestConfig(t, `
channels:
  music: 0
  mic: 1
hotkeys:
  music:
    up: ctrl+f13
  mic:
    mute: ctrl+f13
`)
	ctl := control.New(mixer.NewFake(), 1.0, nil)
	bindings, err := buildBindings(cfg, ctl)
	if err != nil {
		t.Fatal(err)
	}
	_, err = hotkey.New(hotkey.NewFakeSource(), bindings, 0, 0)
	var dup *hotkey.DuplicateBindingError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicateBindingError", err)
	}
}
