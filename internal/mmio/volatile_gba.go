//go:build gameboyadvance

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// Hardware is the bus of the physical address space of the device.
var Hardware Bus = hardwareBus{}

type hardwareBus struct{}

// reg16 returns a pointer to a volatile 16-bit register at the given address.
func reg16(addr uint32) *volatile.Register16 {
	return (*volatile.Register16)(unsafe.Pointer(uintptr(addr)))
}

func (hardwareBus) Load(addr uint32, dst []uint16) {
	for i := range dst {
		dst[i] = reg16(addr + uint32(i)*2).Get()
	}
}

func (hardwareBus) Store(addr uint32, src []uint16) {
	for i, v := range src {
		reg16(addr + uint32(i)*2).Set(v)
	}
}
