package gba

// DisplayControl is the value of the display control register.
type DisplayControl uint16

const (
	modeMask       = 0x0007
	obj1DBit       = 1 << 6
	forcedBlankBit = 1 << 7
	bgShift        = 8
	showObjBit     = 1 << 12
)

// Mode sets the background mode 0-5.
func (d DisplayControl) Mode(mode int) DisplayControl {
	return d&^modeMask | DisplayControl(mode)&modeMask
}

// Obj1D selects one dimensional object tile mapping.
func (d DisplayControl) Obj1D(on bool) DisplayControl {
	return d.set(obj1DBit, on)
}

// ForcedBlank blanks the screen and grants full video memory access.
func (d DisplayControl) ForcedBlank(on bool) DisplayControl {
	return d.set(forcedBlankBit, on)
}

// ShowBG enables or disables background layer 0-3.
func (d DisplayControl) ShowBG(layer int, on bool) DisplayControl {
	return d.set(DisplayControl(1)<<(bgShift+layer&3), on)
}

// ShowObj enables or disables sprites.
func (d DisplayControl) ShowObj(on bool) DisplayControl {
	return d.set(showObjBit, on)
}

func (d DisplayControl) set(bit DisplayControl, on bool) DisplayControl {
	if on {
		return d | bit
	}
	return d &^ bit
}

// BGMode returns the background mode.
func (d DisplayControl) BGMode() int { return int(d & modeMask) }

// IsObj1D reports whether one dimensional object tile mapping is selected.
func (d DisplayControl) IsObj1D() bool { return d&obj1DBit != 0 }

// IsForcedBlank reports whether the screen is blanked.
func (d DisplayControl) IsForcedBlank() bool { return d&forcedBlankBit != 0 }

// BGVisible reports whether background layer 0-3 is enabled.
func (d DisplayControl) BGVisible(layer int) bool {
	return d&(DisplayControl(1)<<(bgShift+layer&3)) != 0
}

// ObjVisible reports whether sprites are enabled.
func (d DisplayControl) ObjVisible() bool { return d&showObjBit != 0 }

// Halfwords implements mmio.Value.
func (DisplayControl) Halfwords() int { return 1 }

// Encode implements mmio.Value.
func (d DisplayControl) Encode(dst []uint16) { dst[0] = uint16(d) }

// Decode implements mmio.Value.
func (DisplayControl) Decode(src []uint16) DisplayControl { return DisplayControl(src[0]) }
