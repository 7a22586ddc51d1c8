// Package config loads the YAML controller configuration: channel-name to
// strip-index mapping, per-channel hotkey specs, and tuning settings.
package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultVolumeStep       = 1.0
	defaultRepeatDelayMS    = 500
	defaultRepeatIntervalMS = 100
)

type Settings struct {
	VolumeStep       float64 `yaml:"volume_step"`
	RepeatDelayMS    int     `yaml:"repeat_delay_ms"`
	RepeatIntervalMS int     `yaml:"repeat_interval_ms"`
}

// KeySpecs accepts either a single spec string or a list of specs, so the
// config can bind one action to several shortcuts.
type KeySpecs []string

func (k *KeySpecs) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*k = KeySpecs{s}
		return nil
	case yaml.SequenceNode:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*k = ss
		return nil
	default:
		return fmt.Errorf("hotkey spec must be a string or a list of strings (line %d)", value.Line)
	}
}

type Config struct {
	Channels map[string]int                 `yaml:"channels"`
	Hotkeys  map[string]map[string]KeySpecs `yaml:"hotkeys"`
	Settings Settings                       `yaml:"settings"`
}

// Load reads and validates the configuration file. Missing settings fall
// back to defaults; a hotkey referencing an unknown channel is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Channels) == 0 {
		return fmt.Errorf("no channels defined")
	}
	for name, strip := range c.Channels {
		if strip < 0 {
			return fmt.Errorf("channel %q: negative strip index %d", name, strip)
		}
	}
	for channel, actions := range c.Hotkeys {
		if _, ok := c.Channels[channel]; !ok {
			return fmt.Errorf("hotkeys reference unknown channel %q", channel)
		}
		for action, specs := range actions {
			if len(specs) == 0 {
				return fmt.Errorf("channel %q action %q has no hotkey", channel, action)
			}
		}
	}
	if c.Settings.VolumeStep < 0 {
		return fmt.Errorf("volume_step must be positive")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Settings.VolumeStep == 0 {
		c.Settings.VolumeStep = defaultVolumeStep
	}
	if c.Settings.RepeatDelayMS == 0 {
		c.Settings.RepeatDelayMS = defaultRepeatDelayMS
	}
	if c.Settings.RepeatIntervalMS == 0 {
		c.Settings.RepeatIntervalMS = defaultRepeatIntervalMS
	}
}

func (c *Config) RepeatDelay() time.Duration {
	return time.Duration(c.Settings.RepeatDelayMS) * time.Millisecond
}

func (c *Config) RepeatInterval() time.Duration {
	return time.Duration(c.Settings.RepeatIntervalMS) * time.Millisecond
}

// ChannelNames returns the configured channel names sorted, so callers
// iterating the config produce deterministic binding order.
func (c *Config) ChannelNames() []string {
	names := make([]string, 0, len(c.Channels))
	for name := range c.Channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActionNames returns a channel's configured action names sorted.
func (c *Config) ActionNames(channel string) []string {
	names := make([]string, 0, len(c.Hotkeys[channel]))
	for name := range c.Hotkeys[channel] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
