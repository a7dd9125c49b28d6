//go:build gameboyadvance

package gba

import "github.com/retroenv/gbaword/internal/mmio"

var hardware = New(mmio.Hardware)

// Hardware returns the address map of the physical device.
func Hardware() *Map {
	return hardware
}
