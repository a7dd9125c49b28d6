// Package keypad decodes the active-low key input register.
package keypad

import "strings"

// Button is a bit of the key input register.
type Button uint16

// Buttons in register bit order.
const (
	A Button = 1 << iota
	B
	Select
	Start
	Right
	Left
	Up
	Down
	R
	L
)

// Mask covers all button bits.
const Mask Button = 1<<10 - 1

var names = [...]string{"A", "B", "Select", "Start", "Right", "Left", "Up", "Down", "R", "L"}

// String returns the names of the set buttons joined by '+'.
func (b Button) String() string {
	var parts []string
	for i, name := range names {
		if b&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// KeyInput is the raw register value. A cleared bit means the button is held.
type KeyInput uint16

// Released is the register value with no button held.
const Released = KeyInput(Mask)

// FromButtons returns the register value with the given buttons held.
func FromButtons(b Button) KeyInput {
	return KeyInput(Mask &^ b)
}

// Buttons returns the set of held buttons.
func (k KeyInput) Buttons() Button {
	return ^Button(k) & Mask
}

// Pressed reports whether all given buttons are held.
func (k KeyInput) Pressed(b Button) bool {
	return k.Buttons()&b == b
}

// JustPressed reports whether any of the given buttons is held now but was
// not held in the previous sample.
func (k KeyInput) JustPressed(b Button, prev KeyInput) bool {
	return k.Buttons()&^prev.Buttons()&b != 0
}

// JustReleased reports whether any of the given buttons was held in the
// previous sample and is released now.
func (k KeyInput) JustReleased(b Button, prev KeyInput) bool {
	return prev.Buttons()&^k.Buttons()&b != 0
}

// Halfwords implements mmio.Value.
func (KeyInput) Halfwords() int { return 1 }

// Encode implements mmio.Value.
func (k KeyInput) Encode(dst []uint16) { dst[0] = uint16(k) }

// Decode implements mmio.Value.
func (KeyInput) Decode(src []uint16) KeyInput { return KeyInput(src[0]) }
