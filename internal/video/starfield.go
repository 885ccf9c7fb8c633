package video

import (
	"github.com/retroboard/skyfox/internal/gfx"
)

// RenderStars draws only the star layer onto dst, without the
// background fill or the sprite pass. Inspection tools use it to
// visualize a pattern bank in isolation.
func (v *Video) RenderStars(ctl Control, dst *gfx.Bitmap) {
	v.drawStars(ctl, dst)
}

// drawStars plots one frame of the procedural star layer: 0x1000
// single-pixel stars read from the pattern ROM bank the control
// register selects. Iteration i advances one pixel column every 16
// stars and reuses the 16 scroll records in star RAM cyclically, which
// is how the hardware slides whole star columns sideways.
func (v *Video) drawStars(ctl Control, dst *gfx.Bitmap) {
	width, height := dst.W(), dst.H()
	blinking := ctl.BlinkEnabled()
	phase := ctl.BlinkPhase()
	bank := ctl.PatternPhase() * PatternBankSize

	for i := 0; i < starsPerFrame; i++ {
		rec := StarTableOffset + (i&(StarRecordCount-1))*2
		pos := int(v.starRAM[rec+1])*2 + int(v.starRAM[rec]>>7)

		offs := (i*2)%PatternBankSize + bank
		pen := v.pattern[offs]
		x := int(v.pattern[offs+1])*2 + pos + starXOffset
		y := (i >> 4) + 1

		if pen&3 != phase || !blinking {
			dst.SetPix(y%height, x%width, uint16(pen))
		}
	}
}
