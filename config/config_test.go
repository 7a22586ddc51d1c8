package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleConfig = `
channels:
  music: 0
  mic: 2

settings:
  volume_step: 2.5
  repeat_delay_ms: 400
  repeat_interval_ms: 80

hotkeys:
  music:
    up: ctrl+shift+f13
    down: ctrl+shift+f14
    mute:
      - ctrl+shift+f15
      - ctrl+alt+m
  mic:
    mute: ctrl+shift+f16
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Channels["mic"] != 2 {
		t.Errorf("mic strip = %d, want 2", cfg.Channels["mic"])
	}
	if cfg.Settings.VolumeStep != 2.5 {
		t.Errorf("volume_step = %v, want 2.5", cfg.Settings.VolumeStep)
	}
	if cfg.RepeatDelay() != 400*time.Millisecond {
		t.Errorf("repeat delay = %v", cfg.RepeatDelay())
	}
	if cfg.RepeatInterval() != 80*time.Millisecond {
		t.Errorf("repeat interval = %v", cfg.RepeatInterval())
	}

	// Scalar and list specs both come back as lists.
	if got := cfg.Hotkeys["music"]["up"]; !slices.Equal(got, KeySpecs{"ctrl+shift+f13"}) {
		t.Errorf("music up specs = %v", got)
	}
	if got := cfg.Hotkeys["music"]["mute"]; len(got) != 2 {
		t.Errorf("music mute specs = %v, want 2 entries", got)
	}

	if got := cfg.ChannelNames(); !slices.Equal(got, []string{"mic", "music"}) {
		t.Errorf("ChannelNames = %v", got)
	}
	if got := cfg.ActionNames("music"); !slices.Equal(got, []string{"down", "mute", "up"}) {
		t.Errorf("ActionNames = %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "channels:\n  music: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Settings.VolumeStep != 1.0 {
		t.Errorf("default volume_step = %v", cfg.Settings.VolumeStep)
	}
	if cfg.RepeatDelay() != 500*time.Millisecond || cfg.RepeatInterval() != 100*time.Millisecond {
		t.Errorf("default cadence = %v/%v", cfg.RepeatDelay(), cfg.RepeatInterval())
	}
}

func TestLoadUnknownChannel(t *testing.T) {
	_, err := Load(writeConfig(t, `
channels:
  music: 0
hotkeys:
  game:
    up: ctrl+f1
`))
	if err == nil {
		t.Fatal("expected error for hotkey on unknown channel")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBadSpecShape(t *testing.T) {
	_, err := Load(writeConfig(t, `
channels:
  music: 0
hotkeys:
  music:
    up:
      nested: wrong
`))
	if err == nil {
		t.Fatal("expected error for mapping-valued hotkey spec")
	}
}
