// Package demo generates roms and a frame hook for running the board
// without any game data: a squadron of ships over a drifting star
// field. It doubles as a worked example of driving the board from a
// program.
package demo

import (
	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/internal/video"
	"github.com/retroboard/skyfox/pkg/utils"
)

// TileROM builds a sprite rom of 16 macro tiles, each a 32x32 diamond
// shaded by distance from the centre.
func TileROM() []byte {
	rom := make([]byte, 16*16*64)
	for m := 0; m < 16; m++ {
		for py := 0; py < 32; py++ {
			for px := 0; px < 32; px++ {
				// manhattan distance, doubled to stay integral
				d := abs(px*2-31) + abs(py*2-31)
				pen := uint8(video.TransparentPen)
				if d <= 30 {
					pen = uint8(m*8 + d/8)
				}
				tile := m*16 + py/8*4 + px/8
				rom[tile*64+py%8*8+px%8] = pen
			}
		}
	}
	return rom
}

// PatternROM scatters stars over the four pattern banks with a small
// linear congruential generator. Records without a star carry the
// background pen, which plots invisibly.
func PatternROM() []byte {
	rom := make([]byte, video.PatternROMSize)
	seed := uint32(0x2545f491)
	for i := 0; i < len(rom); i += 2 {
		seed = seed*1664525 + 1013904223
		pen := uint8(video.TransparentPen)
		if seed>>28 < 2 {
			pen = uint8(seed >> 20 & 0x3f)
		}
		rom[i] = pen
		seed = seed*1664525 + 1013904223
		rom[i+1] = uint8(seed >> 16)
	}
	return rom
}

// Palette gives the generated roms something nicer than the grey
// ramp: cold star pens, warm ship pens, a deep blue fade for the rest.
func Palette() video.Palette {
	var p video.Palette
	for i := range p {
		switch {
		case i < 0x40:
			v := uint8(255 - i*2)
			p[i] = [3]uint8{v, v, 255}
		case i < 0x80:
			p[i] = [3]uint8{255 - uint8(i-0x40)*2, 128 - uint8(i-0x40), 32}
		default:
			v := uint8(255 - i)
			p[i] = [3]uint8{v / 4, v / 4, v / 2}
		}
	}
	return p
}

// Hook returns the per frame animation. It plays the role the game
// program would: the only writer of the RAM windows and the control
// latch between frames.
func Hook() func(*board.Board) {
	return func(b *board.Board) {
		f := int(b.FrameCount())

		// blink the stars, swap the pattern phase now and then
		ctl := uint8(0x08)
		ctl |= uint8((f/64)%4) << 1
		ctl |= uint8((f/16)%4) << 4
		b.WriteControl(ctl)

		// scroll records drift at record dependent speeds for parallax
		for r := 0; r < video.StarRecordCount; r++ {
			pos := f * (r + 2) / 8 % 512
			b.WriteStarRAM(video.StarTableOffset+r*2, uint8(pos&1)<<7)
			b.WriteStarRAM(video.StarTableOffset+r*2+1, uint8(pos>>1))
		}

		for i := 0; i < 8; i++ {
			x := (f*2 + i*96) % 512
			ph := (f + i*61) % 512
			if ph >= 256 {
				ph = 511 - ph
			}
			y := 0x20 + ph*160/256

			code := uint16(i)*2<<8 | 0x88 | uint16(x&1)
			upper, lower := utils.Uint16ToBytes(code)
			b.WriteSpriteRAM(i*4, uint8(y))
			b.WriteSpriteRAM(i*4+1, uint8(x>>1))
			b.WriteSpriteRAM(i*4+2, lower)
			b.WriteSpriteRAM(i*4+3, upper)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
