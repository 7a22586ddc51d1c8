package main

import (
	"fmt"

	"mixkey/config"
	"mixkey/control"
	"mixkey/hotkey"
)

// buildBindings turns the config's channel/action/spec tree into the flat
// binding list the dispatch engine consumes. Channels and actions are
// walked in sorted order so the resulting table is deterministic.
func buildBindings(cfg *config.Config, ctl *control.Controller) ([]hotkey.Binding, error) {
	var bindings []hotkey.Binding
	for _, channel := range cfg.ChannelNames() {
		ch := control.Channel{Name: channel, Strip: cfg.Channels[channel]}
		for _, action := range cfg.ActionNames(channel) {
			act, err := ctl.Action(action, ch)
			if err != nil {
				return nil, err
			}
			for _, spec := range cfg.Hotkeys[channel][action] {
				key, mods, err := hotkey.ParseSpec(spec)
				if err != nil {
					return nil, fmt.Errorf("channel %s action %s: %w", channel, action, err)
				}
				bindings = append(bindings, hotkey.Binding{Key: key, Modifiers: mods, Action: act})
			}
		}
	}
	return bindings, nil
}
