// Package mmio provides typed access to memory mapped hardware registers.
//
// All accesses go through a Bus. On the device the bus performs volatile
// halfword loads and stores at the physical address, on a host the bus is an
// emulated backing store. A value is always transferred as one complete
// Store call, so multi-field registers are never observed half written.
package mmio

// Bus transfers halfwords between a value and the physical address space.
// Implementations must not cache, merge or reorder accesses.
type Bus interface {
	// Load reads len(dst) consecutive halfwords starting at addr.
	Load(addr uint32, dst []uint16)
	// Store writes all halfwords of src starting at addr as one value store.
	Store(addr uint32, src []uint16)
}

// Value is implemented by every type that can live in a register.
// The value is converted to and from its little-endian halfword image.
type Value[T any] interface {
	// Halfwords returns the size of the value in 16-bit units.
	Halfwords() int
	// Encode writes the halfword image of the value into dst.
	Encode(dst []uint16)
	// Decode returns a value built from the halfword image in src.
	Decode(src []uint16) T
}

// maxHalfwords is the largest value supported, an 8bpp tile.
const maxHalfwords = 32

// U16 is a raw 16-bit register value.
type U16 uint16

// Halfwords implements Value.
func (U16) Halfwords() int { return 1 }

// Encode implements Value.
func (v U16) Encode(dst []uint16) { dst[0] = uint16(v) }

// Decode implements Value.
func (U16) Decode(src []uint16) U16 { return U16(src[0]) }

// U32 is a raw 32-bit register value, stored low halfword first.
type U32 uint32

// Halfwords implements Value.
func (U32) Halfwords() int { return 2 }

// Encode implements Value.
func (v U32) Encode(dst []uint16) {
	dst[0] = uint16(v)
	dst[1] = uint16(v >> 16)
}

// Decode implements Value.
func (U32) Decode(src []uint16) U32 {
	return U32(uint32(src[0]) | uint32(src[1])<<16)
}

// SizeOf returns the size in bytes of a register value of type T.
func SizeOf[T Value[T]]() uint32 {
	var v T
	return uint32(v.Halfwords()) * 2
}
