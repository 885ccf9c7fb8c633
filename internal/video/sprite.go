package video

import (
	"github.com/retroboard/skyfox/internal/gfx"
	"github.com/retroboard/skyfox/pkg/utils"
)

// Code is the 16-bit code word of a sprite table entry. Besides the
// tile number it packs the flip bits, the low X bit and the size class.
type Code uint16

// XLow returns the ninth, least significant bit of the sprite X origin.
func (c Code) XLow() int {
	return int(c & 0x01)
}

// FlipX reports whether the sprite is mirrored horizontally.
func (c Code) FlipX() bool {
	return c&0x02 != 0
}

// FlipY reports whether the sprite is mirrored vertically.
func (c Code) FlipY() bool {
	return c&0x04 != 0
}

// Cells returns the sprite's side length in 8 pixel cells: 4, 2 or 1
// for 32x32, 16x16 and 8x8 sprites.
func (c Code) Cells() int {
	switch c & 0x88 {
	case 0x88:
		return 4
	case 0x08:
		return 2
	default:
		return 1
	}
}

// LowTile returns the first cell inside the 4x4 cell grid of a macro
// tile: 0 for a 32x32 sprite, a quadrant corner (0, 2, 8 or 10) for a
// 16x16 sprite, any of the 16 cells for an 8x8 sprite.
func (c Code) LowTile() int {
	switch c & 0x88 {
	case 0x88:
		return 0
	case 0x08:
		return (int(c&0x20) >> 2) | (int(c&0x10) >> 3)
	default:
		return int(c>>4) & 0x0f
	}
}

// HighTile returns the macro tile base in cells. Bit 15 extends the
// code space: shifted down by 4 it reaches a second 0x80 macro tile
// bank, by 3 a further bank when the control register selects wide
// addressing. 0x180 macro tiles are reachable in total.
func (c Code) HighTile(wide bool) int {
	shift := 4
	if wide {
		shift = 3
	}
	return (int(c>>4) & 0x7f0) + (int(c&0x8000) >> shift)
}

// Sprite is a decoded sprite table entry.
type Sprite struct {
	X, Y int
	Code Code
}

// SpriteAt decodes entry i of the sprite table. The X origin is 9 bits
// wide, assembled from the second entry byte and the code's low bit.
func SpriteAt(ram []byte, i int) Sprite {
	e := ram[i*SpriteEntrySize : i*SpriteEntrySize+SpriteEntrySize]
	code := Code(utils.BytesToUint16(e[3], e[2]))
	return Sprite{
		X:    int(e[1])<<1 | code.XLow(),
		Y:    int(e[0]),
		Code: code,
	}
}

// RenderSprite draws a single decoded sprite at the origin of dst.
// Flip bits apply, screen flip and bottom edge wraparound do not.
// Inspection tools use it to preview table entries.
func (v *Video) RenderSprite(s Sprite, wide bool, dst *gfx.Bitmap) {
	dst.Fill(TransparentPen)

	n := s.Code.Cells()
	flipX, flipY := s.Code.FlipX(), s.Code.FlipY()

	xstart, xend, xinc := 0, n, 1
	ystart, yend, yinc := 0, n, 1
	if flipX {
		xstart, xend, xinc = n-1, -1, -1
	}
	if flipY {
		ystart, yend, yinc = n-1, -1, -1
	}

	code := s.Code.LowTile() + s.Code.HighTile(wide)
	for dy := ystart; dy != yend; dy += yinc {
		for dx := xstart; dx != xend; dx += xinc {
			v.tiles.Draw(dst, dst.Rect(), code, 0, flipX, flipY, dx*8, dy*8, TransparentPen)
			code++
		}
		if n == 2 {
			code += 2
		}
	}
}

// drawSprites composites all 256 table entries onto dst in table
// order. Each 8x8 cell is blitted twice, the second time one full
// surface height up, so a sprite pushed past the bottom edge re-enters
// at the top; the board genuinely does this.
func (v *Video) drawSprites(ctl Control, dst *gfx.Bitmap, clip gfx.Rect) {
	width, height := dst.W(), dst.H()
	wide := ctl.WideTileBank()

	for i := 0; i < SpriteCount; i++ {
		s := SpriteAt(v.spriteRAM, i)
		n := s.Code.Cells()
		flipX, flipY := s.Code.FlipX(), s.Code.FlipY()
		x, y := s.X, s.Y

		if ctl.FlipScreen() {
			x = width - x - n*8
			y = height - y - n*8
			flipX = !flipX
			flipY = !flipY
		}

		xstart, xend, xinc := 0, n, 1
		ystart, yend, yinc := 0, n, 1
		if flipX {
			xstart, xend, xinc = n-1, -1, -1
		}
		if flipY {
			ystart, yend, yinc = n-1, -1, -1
		}

		code := s.Code.LowTile() + s.Code.HighTile(wide)
		for dy := ystart; dy != yend; dy += yinc {
			for dx := xstart; dx != xend; dx += xinc {
				v.tiles.Draw(dst, clip, code, 0, flipX, flipY, dx*8+x, dy*8+y, TransparentPen)
				v.tiles.Draw(dst, clip, code, 0, flipX, flipY, dx*8+x, dy*8+y-height, TransparentPen)
				code++
			}
			// a 16x16 sprite spans half a macro tile row, skip the
			// other quadrant's cells
			if n == 2 {
				code += 2
			}
		}
	}
}
