package emu

import (
	"github.com/retroenv/gbaword/internal/keypad"
	"github.com/retroenv/retrogolib/input"
	"github.com/retroenv/retrogolib/log"
)

// keyMapping maps host keyboard keys to device buttons.
var keyMapping = map[input.Key]keypad.Button{
	input.Z:         keypad.A,
	input.X:         keypad.B,
	input.Backspace: keypad.Select,
	input.Enter:     keypad.Start,
	input.Right:     keypad.Right,
	input.Left:      keypad.Left,
	input.Up:        keypad.Up,
	input.Down:      keypad.Down,
	input.S:         keypad.R,
	input.A:         keypad.L,
}

// PressKeys holds the buttons mapped to the given host keys and releases
// all others. Keys without a mapping are ignored. It returns the held
// buttons.
func (m *Memory) PressKeys(keys ...input.Key) keypad.Button {
	var buttons keypad.Button
	for _, key := range keys {
		button, ok := keyMapping[key]
		if !ok {
			m.logger.Debug("Ignoring unmapped key", log.Int("key", int(key)))
			continue
		}
		buttons |= button
	}

	m.keys = keypad.FromButtons(buttons)
	return buttons
}
