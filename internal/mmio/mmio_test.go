package mmio

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// recordingBus is a flat halfword store that counts every transfer.
type recordingBus struct {
	base   uint32
	data   []uint16
	loads  int
	stores [][]uint16
}

func newRecordingBus(base uint32, size int) *recordingBus {
	return &recordingBus{base: base, data: make([]uint16, size/2)}
}

func (b *recordingBus) Load(addr uint32, dst []uint16) {
	b.loads++
	copy(dst, b.data[(addr-b.base)/2:])
}

func (b *recordingBus) Store(addr uint32, src []uint16) {
	b.stores = append(b.stores, append([]uint16(nil), src...))
	copy(b.data[(addr-b.base)/2:], src)
}

// pair is a two field value used to check that a write is one store.
type pair struct {
	a, b uint16
}

func (pair) Halfwords() int { return 2 }

func (p pair) Encode(dst []uint16) {
	dst[0] = p.a
	dst[1] = p.b
}

func (pair) Decode(src []uint16) pair { return pair{a: src[0], b: src[1]} }

func TestRegister(t *testing.T) {
	bus := newRecordingBus(0x0400_0000, 0x10)

	reg := NewRegister[U16](bus, 0x0400_0002)
	reg.Write(0x1234)
	assert.Equal(t, U16(0x1234), reg.Read())
	assert.Equal(t, uint32(0x0400_0002), reg.Addr())

	// each read goes to the bus, no value is cached
	bus.data[1] = 0xBEEF
	assert.Equal(t, U16(0xBEEF), reg.Read())
	assert.Equal(t, 2, bus.loads)
}

func TestRegister_U32(t *testing.T) {
	bus := newRecordingBus(0x0601_0000, 8)

	reg := NewRegister[U32](bus, 0x0601_0004)
	reg.Write(0x76543210)
	assert.Equal(t, uint16(0x3210), bus.data[2])
	assert.Equal(t, uint16(0x7654), bus.data[3])
	assert.Equal(t, U32(0x76543210), reg.Read())
}

func TestRegister_SingleStore(t *testing.T) {
	bus := newRecordingBus(0x0700_0000, 8)

	reg := NewRegister[pair](bus, 0x0700_0000)
	reg.Write(pair{a: 1, b: 2})

	assert.Len(t, bus.stores, 1)
	assert.Equal(t, []uint16{1, 2}, bus.stores[0])
}

func TestReadOnly(t *testing.T) {
	bus := newRecordingBus(0x0400_0130, 2)
	bus.data[0] = 0x03FF

	reg := NewReadOnly[U16](bus, 0x0400_0130)
	assert.Equal(t, U16(0x03FF), reg.Read())
	assert.Equal(t, uint32(0x0400_0130), reg.Addr())
}

func TestRegion_Index(t *testing.T) {
	tests := []struct {
		name   string
		base   uint32
		count  int
		stride uint32
	}{
		{name: "palette", base: 0x0500_0200, count: 256, stride: 2},
		{name: "attributes", base: 0x0700_0000, count: 128, stride: 8},
		{name: "tile words", base: 0x0601_0000, count: 8192, stride: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := newRecordingBus(tt.base, tt.count*int(tt.stride))
			region, err := NewRegion[U16](bus, tt.base, tt.count, tt.stride, uint32(tt.count)*tt.stride)
			assert.NoError(t, err)
			assert.Equal(t, tt.count, region.Len())
			assert.Equal(t, tt.stride, region.Stride())
			assert.Equal(t, tt.base, region.Base())

			for i := range tt.count {
				reg, err := region.Index(i)
				assert.NoError(t, err)
				assert.Equal(t, tt.base+uint32(i)*tt.stride, reg.Addr())
			}

			_, err = region.Index(tt.count)
			assert.ErrorIs(t, err, ErrOutOfRange)
			_, err = region.Index(-1)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestRegion_Write(t *testing.T) {
	bus := newRecordingBus(0x0700_0000, 0x400)
	region := MustRegion(NewRegion[pair](bus, 0x0700_0000, 128, 8, 0x400))

	reg, err := region.Index(3)
	assert.NoError(t, err)
	reg.Write(pair{a: 0xAAAA, b: 0xBBBB})

	assert.Equal(t, uint16(0xAAAA), bus.data[12])
	assert.Equal(t, uint16(0xBBBB), bus.data[13])
	// the halfwords after the value inside the stride are untouched
	assert.Equal(t, uint16(0), bus.data[14])
	assert.Equal(t, uint16(0), bus.data[15])
}

func TestRegion_Layout(t *testing.T) {
	bus := newRecordingBus(0, 0)

	tests := []struct {
		name    string
		create  func() error
		wantErr bool
	}{
		{
			name: "exact fit",
			create: func() error {
				_, err := NewRegion[U32](bus, 0x0601_0000, 8192, 4, 0x8000)
				return err
			},
		},
		{
			name: "stride smaller than element",
			create: func() error {
				_, err := NewRegion[U32](bus, 0x0601_0000, 16, 2, 0x8000)
				return err
			},
			wantErr: true,
		},
		{
			name: "too many elements",
			create: func() error {
				_, err := NewRegion[U16](bus, 0x0500_0200, 257, 2, 0x200)
				return err
			},
			wantErr: true,
		},
		{
			name: "unaligned base",
			create: func() error {
				_, err := NewRegion[U16](bus, 0x0500_0201, 1, 2, 0x200)
				return err
			},
			wantErr: true,
		},
		{
			name: "empty region",
			create: func() error {
				_, err := NewRegion[U16](bus, 0x0500_0200, 0, 2, 0x200)
				return err
			},
			wantErr: true,
		},
		{
			name: "no bus",
			create: func() error {
				_, err := NewRegion[U16](nil, 0x0500_0200, 1, 2, 0x200)
				return err
			},
			wantErr: true,
		},
		{
			name: "aliased elements fit",
			create: func() error {
				_, err := NewAliasedRegion[pair](bus, 0x0601_0000, 3, 2, 8)
				return err
			},
		},
		{
			name: "aliased last element overflows",
			create: func() error {
				_, err := NewAliasedRegion[pair](bus, 0x0601_0000, 4, 2, 8)
				return err
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrRegionLayout))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegion_MustIndex(t *testing.T) {
	bus := newRecordingBus(0x0500_0000, 4)
	region := MustRegion(NewRegion[U16](bus, 0x0500_0000, 2, 2, 4))

	assert.NotPanics(t, func() { region.MustIndex(1) })
	assert.Panics(t, func() { region.MustIndex(2) })
	assert.Panics(t, func() { MustRegion(NewRegion[U16](bus, 0x0500_0000, 3, 2, 4)) })
}
