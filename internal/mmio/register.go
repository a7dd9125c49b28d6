package mmio

// Register is a single hardware register of type T at a fixed address.
type Register[T Value[T]] struct {
	bus  Bus
	addr uint32
}

// NewRegister returns the register of type T at the given address.
func NewRegister[T Value[T]](bus Bus, addr uint32) Register[T] {
	return Register[T]{bus: bus, addr: addr}
}

// Addr returns the physical address of the register.
func (r Register[T]) Addr() uint32 {
	return r.addr
}

// Read loads the current value from the hardware.
func (r Register[T]) Read() T {
	var v T
	var buf [maxHalfwords]uint16
	data := buf[:v.Halfwords()]
	r.bus.Load(r.addr, data)
	return v.Decode(data)
}

// Write stores the complete value to the hardware in a single store.
func (r Register[T]) Write(v T) {
	var buf [maxHalfwords]uint16
	data := buf[:v.Halfwords()]
	v.Encode(data)
	r.bus.Store(r.addr, data)
}

// ReadOnly is a register that hardware updates and software only reads.
type ReadOnly[T Value[T]] struct {
	reg Register[T]
}

// NewReadOnly returns the read-only register of type T at the given address.
func NewReadOnly[T Value[T]](bus Bus, addr uint32) ReadOnly[T] {
	return ReadOnly[T]{reg: NewRegister[T](bus, addr)}
}

// Addr returns the physical address of the register.
func (r ReadOnly[T]) Addr() uint32 {
	return r.reg.addr
}

// Read loads the current value from the hardware.
func (r ReadOnly[T]) Read() T {
	return r.reg.Read()
}
