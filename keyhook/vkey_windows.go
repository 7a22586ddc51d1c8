//go:build windows

package keyhook

import "fmt"

// Key names follow the lowercase tokens used in binding specs
// ("f13", "print screen", "volume up").
var vkeys = map[string]uint32{
	"backspace":    0x08,
	"tab":          0x09,
	"enter":        0x0D,
	"return":       0x0D,
	"pause":        0x13,
	"caps lock":    0x14,
	"esc":          0x1B,
	"escape":       0x1B,
	"space":        0x20,
	"page up":      0x21,
	"page down":    0x22,
	"end":          0x23,
	"home":         0x24,
	"left":         0x25,
	"up":           0x26,
	"right":        0x27,
	"down":         0x28,
	"print screen": 0x2C,
	"insert":       0x2D,
	"delete":       0x2E,
	"scroll lock":  0x91,
	"volume mute":  0xAD,
	"volume down":  0xAE,
	"volume up":    0xAF,
}

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		vkeys[string(c)] = uint32(c - 'a' + 'A')
	}
	for c := byte('0'); c <= '9'; c++ {
		vkeys[string(c)] = uint32(c)
	}
	// F1..F24 are contiguous from 0x70.
	for i := 1; i <= 24; i++ {
		vkeys[fmt.Sprintf("f%d", i)] = uint32(0x70 + i - 1)
	}
}

func vkeyByName(key string) (uint32, error) {
	vk, ok := vkeys[key]
	if !ok {
		return 0, fmt.Errorf("keyhook: unknown key %q", key)
	}
	return vk, nil
}
