// Package emu provides an emulated backing store for the display hardware
// address map, used to run and preview the video code on a host.
package emu

import (
	"encoding/binary"
	"fmt"

	"github.com/retroenv/gbaword/internal/gba"
	"github.com/retroenv/gbaword/internal/keypad"
	"github.com/retroenv/gbaword/internal/mmio"
	"github.com/retroenv/retrogolib/log"
)

var _ mmio.Bus = (*Memory)(nil)

// Store is a recorded bus store.
type Store struct {
	Addr uint32
	Data []uint16
}

// frame is a copy of the video memory that is shown on screen.
type frame struct {
	control gba.DisplayControl
	palette []byte
	vram    []byte
	oam     []byte
}

// Memory emulates the IO, palette, video and sprite table memory. Each read
// of the vertical counter advances the display by one scanline and returns
// the new line. Entering the vertical blank latches the video memory into
// the visible frame.
// Memory is not safe for concurrent use.
type Memory struct {
	logger *log.Logger

	io      []byte
	palette []byte
	vram    []byte
	oam     []byte

	line    int
	frames  int
	keys    keypad.KeyInput
	visible frame

	journaling bool
	journal    []Store
}

// Option configures a Memory.
type Option func(*Memory)

// WithLogger sets the logger used to trace bus accesses.
func WithLogger(logger *log.Logger) Option {
	return func(m *Memory) {
		m.logger = logger
	}
}

// WithJournal enables recording of every store.
func WithJournal() Option {
	return func(m *Memory) {
		m.journaling = true
	}
}

// New returns a zeroed memory with no button held and the display at line 0.
func New(options ...Option) *Memory {
	m := &Memory{
		logger:  log.NewNop(),
		io:      make([]byte, gba.IOSize),
		palette: make([]byte, gba.PaletteSize),
		vram:    make([]byte, gba.VRAMSize),
		oam:     make([]byte, gba.OAMSize),
		keys:    keypad.Released,
		visible: frame{
			palette: make([]byte, gba.PaletteSize),
			vram:    make([]byte, gba.VRAMSize),
			oam:     make([]byte, gba.OAMSize),
		},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Load implements mmio.Bus.
func (m *Memory) Load(addr uint32, dst []uint16) {
	for i := range dst {
		dst[i] = m.read16(addr + uint32(i)*2)
	}
}

// Store implements mmio.Bus.
func (m *Memory) Store(addr uint32, src []uint16) {
	m.logger.Trace("Store",
		log.Hex("address", addr),
		log.Int("halfwords", len(src)))

	if m.journaling {
		m.journal = append(m.journal, Store{
			Addr: addr,
			Data: append([]uint16(nil), src...),
		})
	}

	for i, v := range src {
		m.write16(addr+uint32(i)*2, v)
	}
}

func (m *Memory) read16(addr uint32) uint16 {
	switch addr {
	case gba.VCountAddr:
		m.tick()
		return uint16(m.line)
	case gba.DisplayStatusAddr:
		status := binary.LittleEndian.Uint16(m.io[4:])
		if m.line >= gba.ScreenHeight && m.line < gba.LinesPerFrame-1 {
			status |= gba.VBlankFlag
		}
		return status
	case gba.KeyInputAddr:
		return uint16(m.keys)
	}

	mem, offset := m.area(addr)
	return binary.LittleEndian.Uint16(mem[offset:])
}

func (m *Memory) write16(addr uint32, value uint16) {
	switch addr {
	case gba.VCountAddr, gba.KeyInputAddr:
		m.logger.Trace("Ignoring store to read-only register", log.Hex("address", addr))
		return
	case gba.DisplayStatusAddr:
		value &^= gba.VBlankFlag
	}

	mem, offset := m.area(addr)
	binary.LittleEndian.PutUint16(mem[offset:], value)
}

// area returns the memory backing the address and the offset into it. It
// panics for addresses outside of the emulated areas, which on hardware
// would be a silent corruption.
func (m *Memory) area(addr uint32) ([]byte, uint32) {
	if addr%2 != 0 {
		panic(fmt.Sprintf("unaligned halfword access at 0x%08X", addr))
	}

	switch {
	case addr >= gba.IOBase && addr < gba.IOBase+gba.IOSize:
		return m.io, addr - gba.IOBase
	case addr >= gba.PaletteBase && addr < gba.PaletteBase+gba.PaletteSize:
		return m.palette, addr - gba.PaletteBase
	case addr >= gba.VRAMBase && addr < gba.VRAMBase+gba.VRAMSize:
		return m.vram, addr - gba.VRAMBase
	case addr >= gba.OAMBase && addr < gba.OAMBase+gba.OAMSize:
		return m.oam, addr - gba.OAMBase
	default:
		panic(fmt.Sprintf("access to unmapped address 0x%08X", addr))
	}
}

// tick advances the display by one scanline.
func (m *Memory) tick() {
	m.line = (m.line + 1) % gba.LinesPerFrame
	if m.line == gba.ScreenHeight {
		m.latch()
	}
}

// latch copies the video memory into the visible frame.
func (m *Memory) latch() {
	m.visible.control = gba.DisplayControl(binary.LittleEndian.Uint16(m.io))
	copy(m.visible.palette, m.palette)
	copy(m.visible.vram, m.vram)
	copy(m.visible.oam, m.oam)
	m.frames++

	m.logger.Trace("Vertical blank", log.Int("frame", m.frames))
}

// Line returns the current scanline.
func (m *Memory) Line() int {
	return m.line
}

// Frames returns the number of vertical blanks entered.
func (m *Memory) Frames() int {
	return m.frames
}

// NextFrame advances the display to the start of the next vertical blank.
func (m *Memory) NextFrame() {
	for {
		m.tick()
		if m.line == gba.ScreenHeight {
			return
		}
	}
}

// SetButtons sets the value of the key input register.
func (m *Memory) SetButtons(keys keypad.KeyInput) {
	m.keys = keys
}

// Journal returns the recorded stores.
func (m *Memory) Journal() []Store {
	return m.journal
}

// ResetJournal discards the recorded stores.
func (m *Memory) ResetJournal() {
	m.journal = nil
}
