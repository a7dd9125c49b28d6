package mmio

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an index exceeds the declared element count.
	ErrOutOfRange = errors.New("index out of range")
	// ErrRegionLayout is returned when a region does not fit its hardware area.
	ErrRegionLayout = errors.New("invalid region layout")
)

// Region is a fixed-count, fixed-stride array of identical registers.
type Region[T Value[T]] struct {
	bus    Bus
	base   uint32
	count  int
	stride uint32
}

// NewRegion returns a region of count registers of type T starting at base,
// each stride bytes apart. The region must fit into the size bytes of the
// hardware area it is placed in and elements must not overlap.
func NewRegion[T Value[T]](bus Bus, base uint32, count int, stride, size uint32) (Region[T], error) {
	elem := SizeOf[T]()
	if stride < elem {
		return Region[T]{}, fmt.Errorf("%w: stride %d is smaller than element size %d", ErrRegionLayout, stride, elem)
	}
	return newRegion[T](bus, base, count, stride, size)
}

// NewAliasedRegion returns a region whose elements may overlap, for hardware
// that addresses larger values in smaller units. Only the extent of the last
// element is checked against the hardware area size.
func NewAliasedRegion[T Value[T]](bus Bus, base uint32, count int, stride, size uint32) (Region[T], error) {
	return newRegion[T](bus, base, count, stride, size)
}

func newRegion[T Value[T]](bus Bus, base uint32, count int, stride, size uint32) (Region[T], error) {
	if bus == nil {
		return Region[T]{}, fmt.Errorf("%w: no bus", ErrRegionLayout)
	}
	if base%2 != 0 || stride%2 != 0 {
		return Region[T]{}, fmt.Errorf("%w: base 0x%08X or stride %d not halfword aligned", ErrRegionLayout, base, stride)
	}
	if count <= 0 || stride == 0 {
		return Region[T]{}, fmt.Errorf("%w: empty region at 0x%08X", ErrRegionLayout, base)
	}

	end := uint64(count-1)*uint64(stride) + uint64(SizeOf[T]())
	if end > uint64(size) {
		return Region[T]{}, fmt.Errorf("%w: %d elements with stride %d need %d bytes, area has %d",
			ErrRegionLayout, count, stride, end, size)
	}

	return Region[T]{
		bus:    bus,
		base:   base,
		count:  count,
		stride: stride,
	}, nil
}

// MustRegion is like NewRegion or NewAliasedRegion but panics on an invalid
// layout. It simplifies initialization of the static address map.
func MustRegion[T Value[T]](r Region[T], err error) Region[T] {
	if err != nil {
		panic(err)
	}
	return r
}

// Base returns the address of the first element.
func (r Region[T]) Base() uint32 {
	return r.base
}

// Len returns the number of elements.
func (r Region[T]) Len() int {
	return r.count
}

// Stride returns the distance in bytes between two elements.
func (r Region[T]) Stride() uint32 {
	return r.stride
}

// Addr returns the address of element i.
func (r Region[T]) Addr(i int) (uint32, error) {
	if i < 0 || i >= r.count {
		return 0, fmt.Errorf("%w: index %d, region at 0x%08X has %d elements", ErrOutOfRange, i, r.base, r.count)
	}
	return r.base + uint32(i)*r.stride, nil
}

// Index returns the register of element i.
func (r Region[T]) Index(i int) (Register[T], error) {
	addr, err := r.Addr(i)
	if err != nil {
		return Register[T]{}, err
	}
	return NewRegister[T](r.bus, addr), nil
}

// MustIndex returns the register of element i and panics if i is out of
// range. Device code uses it where the index is a checked precondition.
func (r Region[T]) MustIndex(i int) Register[T] {
	reg, err := r.Index(i)
	if err != nil {
		panic(err)
	}
	return reg
}
