package video

import (
	"fmt"
)

// Palette maps the 256 pens to RGB for presentation. The board derives
// its colours from PROMs through a resistor network; that decode
// happens in external tooling and the core only consumes the result.
type Palette [256][3]uint8

// GreyPalette returns the fallback palette used when no palette file
// is given: a linear ramp with the background pen darkest.
func GreyPalette() Palette {
	var p Palette
	for i := range p {
		v := uint8(255 - i)
		p[i] = [3]uint8{v, v, v}
	}
	return p
}

// PaletteFrom parses a raw RGB dump, three bytes per pen.
func PaletteFrom(data []byte) (Palette, error) {
	var p Palette
	if len(data) != len(p)*3 {
		return p, fmt.Errorf("palette is %d bytes, want %d", len(data), len(p)*3)
	}
	for i := range p {
		p[i] = [3]uint8{data[i*3], data[i*3+1], data[i*3+2]}
	}
	return p, nil
}

// RGB resolves a pen through the palette.
func (p Palette) RGB(pen uint16) [3]uint8 {
	return p[pen&0xff]
}
