// Package video implements the sprite compositor and star field
// generator of the Sky Fox video board. Both layers are rendered once
// per frame as pure functions of the control latch, the RAM windows
// and the ROMs; there is no scanline or beam state.
package video

import (
	"github.com/retroboard/skyfox/internal/gfx"
)

const (
	// SpriteCount is the number of entries in the sprite table.
	SpriteCount = 256
	// SpriteEntrySize is the byte size of one sprite table entry.
	SpriteEntrySize = 4
	// SpriteRAMSize is the byte size of the sprite table window.
	SpriteRAMSize = SpriteCount * SpriteEntrySize

	// StarRAMSize is the byte size of the star control window.
	StarRAMSize = 0x100
	// StarTableOffset is where the scroll records sit inside the star
	// control window.
	StarTableOffset = 0xe0
	// StarRecordCount is the number of two byte scroll records;
	// generator iteration i reads record i%16.
	StarRecordCount = 16

	// PatternBankSize is the byte size of one star pattern bank.
	PatternBankSize = 0x2000
	// PatternBankCount is the number of banks in the pattern ROM.
	PatternBankCount = 4
	// PatternROMSize is the byte size of the whole pattern ROM.
	PatternROMSize = PatternBankSize * PatternBankCount

	// TransparentPen fills the frame before compositing and is skipped
	// by the sprite blitter.
	TransparentPen = 0xff

	// starsPerFrame is the number of generator iterations per frame.
	starsPerFrame = 0x1000
	// starXOffset is the fixed horizontal bias added to every star.
	starXOffset = 0x5b
)

// Video renders the two layers of the board. It owns no memory: the
// sprite table, star records and ROMs are windows into the board's
// address space, mutated between frames through the board's write
// handlers.
type Video struct {
	spriteRAM []byte
	starRAM   []byte
	pattern   []byte

	tiles gfx.TileRenderer

	// Debug disables individual layers for inspection UIs.
	Debug struct {
		SpritesDisabled bool
		StarsDisabled   bool
	}
}

// New creates a video core over the given memory windows. spriteRAM
// and starRAM must be at least SpriteRAMSize and StarRAMSize bytes,
// pattern at least PatternROMSize; the board validates sizes before
// construction.
func New(spriteRAM, starRAM, pattern []byte, tiles gfx.TileRenderer) *Video {
	return &Video{
		spriteRAM: spriteRAM,
		starRAM:   starRAM,
		pattern:   pattern,
		tiles:     tiles,
	}
}

// RenderFrame composites one frame into dst: background fill, star
// layer, sprites on top. ctl is the control latch as sampled at frame
// start; rendering never reads a live register. clip bounds the sprite
// blitter only, the star plotter wraps on the full surface instead.
func (v *Video) RenderFrame(ctl Control, dst *gfx.Bitmap, clip gfx.Rect) {
	dst.Fill(TransparentPen)
	if !v.Debug.StarsDisabled {
		v.drawStars(ctl, dst)
	}
	if !v.Debug.SpritesDisabled {
		v.drawSprites(ctl, dst, clip)
	}
}
