package video

import (
	"testing"

	"github.com/retroboard/skyfox/internal/gfx"
)

func newStarVideo() (*Video, []byte, []byte) {
	starRAM := make([]byte, StarRAMSize)
	pattern := make([]byte, PatternROMSize)
	v := New(make([]byte, SpriteRAMSize), starRAM, pattern, &recordingRenderer{})
	return v, starRAM, pattern
}

func newStarTarget() *gfx.Bitmap {
	dst := gfx.NewBitmap(512, 256)
	dst.Fill(TransparentPen)
	return dst
}

func TestDrawStars(t *testing.T) {
	t.Run("plots from the pattern rom", func(t *testing.T) {
		v, _, pattern := newStarVideo()
		pattern[0] = 0x07 // pen of star 0
		pattern[1] = 0x10 // x byte of star 0
		dst := newStarTarget()
		v.drawStars(0, dst)

		// x = 0x10*2 + 0x5b, y = 0>>4 + 1
		if got := dst.Pix(1, 123); got != 0x07 {
			t.Errorf("expected pen 7 at (1,123), got %d", got)
		}
	})

	t.Run("scroll records shift star columns", func(t *testing.T) {
		v, starRAM, pattern := newStarVideo()
		pattern[0] = 0x0d  // star 0, record 0
		pattern[1] = 0x10
		pattern[30] = 0x0e // star 15, record 15
		// record 0: position = b1*2 + b0 bit 7
		starRAM[StarTableOffset] = 0x80
		starRAM[StarTableOffset+1] = 0x05
		dst := newStarTarget()
		v.drawStars(0, dst)

		if got := dst.Pix(1, 123+11); got != 0x0d {
			t.Errorf("expected scrolled star at (1,134), got pen %d", got)
		}
		// record 15 is still zero
		if got := dst.Pix(1, 0x5b); got != 0x0e {
			t.Errorf("expected unscrolled star at (1,91), got pen %d", got)
		}
	})

	t.Run("records are reused every 16 stars", func(t *testing.T) {
		v, starRAM, pattern := newStarVideo()
		starRAM[StarTableOffset+1] = 0x08 // record 0, position 16
		pattern[0] = 0x09                 // star 0
		pattern[32] = 0x0a                // star 16, same record
		dst := newStarTarget()
		v.drawStars(0, dst)

		if got := dst.Pix(1, 0x5b+16); got != 0x09 {
			t.Errorf("expected star 0 at (1,107), got pen %d", got)
		}
		if got := dst.Pix(2, 0x5b+16); got != 0x0a {
			t.Errorf("expected star 16 at (2,107), got pen %d", got)
		}
	})

	t.Run("pattern phase selects the bank", func(t *testing.T) {
		v, _, pattern := newStarVideo()
		pattern[PatternBankSize] = 0x22
		pattern[PatternBankSize+1] = 0x10
		pattern[3*PatternBankSize] = 0x33
		pattern[3*PatternBankSize+1] = 0x20
		dst := newStarTarget()

		v.drawStars(Control(0x02), dst) // phase 1
		if got := dst.Pix(1, 123); got != 0x22 {
			t.Errorf("expected bank 1 pen 0x22, got %d", got)
		}
		v.drawStars(Control(0x06), dst) // phase 3
		if got := dst.Pix(1, 155); got != 0x33 {
			t.Errorf("expected bank 3 pen 0x33, got %d", got)
		}
	})

	t.Run("blinking suppresses one star class", func(t *testing.T) {
		v, _, pattern := newStarVideo()
		pattern[0] = 0x07 // class 3
		pattern[1] = 0x10
		pattern[2] = 0x06 // class 2
		pattern[3] = 0x20
		dst := newStarTarget()

		// blink enabled, phase 3: class 3 stars vanish
		v.drawStars(Control(0x08|0x30), dst)
		if got := dst.Pix(1, 123); got != TransparentPen {
			t.Errorf("expected class 3 star suppressed, got pen %d", got)
		}
		if got := dst.Pix(1, 155); got != 0x06 {
			t.Errorf("expected class 2 star plotted, got pen %d", got)
		}

		// same phase bits without the enable bit plot everything
		dst.Fill(TransparentPen)
		v.drawStars(Control(0x30), dst)
		if got := dst.Pix(1, 123); got != 0x07 {
			t.Errorf("expected class 3 star plotted without blink, got pen %d", got)
		}
	})

	t.Run("plot wraps on both axes", func(t *testing.T) {
		v, starRAM, pattern := newStarVideo()
		// star 4064 is the first of row 255
		offs := (4064 * 2) % PatternBankSize
		pattern[offs] = 0x55
		pattern[offs+1] = 210 // x = 420 + 0x5b = 511
		// star 4080 is the first of row 256, wrapping to row 0
		offs = (4080 * 2) % PatternBankSize
		pattern[offs] = 0x66
		pattern[offs+1] = 0x10
		dst := newStarTarget()
		v.drawStars(0, dst)

		if got := dst.Pix(255, 511); got != 0x55 {
			t.Errorf("expected star at the far corner (255,511), got pen %d", got)
		}
		if got := dst.Pix(0, 123); got != 0x66 {
			t.Errorf("expected row 256 to wrap to row 0, got pen %d", got)
		}

		// one more scroll position pushes x to 512, wrapping to column 0
		starRAM[StarTableOffset] = 0x80
		dst.Fill(TransparentPen)
		v.drawStars(0, dst)
		if got := dst.Pix(255, 0); got != 0x55 {
			t.Errorf("expected x 512 to wrap to column 0, got pen %d", got)
		}
	})

	t.Run("deterministic for fixed inputs", func(t *testing.T) {
		v, starRAM, pattern := newStarVideo()
		seed := uint32(0x2545f491)
		for i := range pattern {
			seed = seed*1664525 + 1013904223
			pattern[i] = uint8(seed >> 24)
		}
		for i := range starRAM {
			seed = seed*1664525 + 1013904223
			starRAM[i] = uint8(seed >> 24)
		}

		a := newStarTarget()
		b := newStarTarget()
		v.drawStars(Control(0x2a), a)
		v.drawStars(Control(0x2a), b)

		pa, pb := a.Pixels(), b.Pixels()
		for i := range pa {
			if pa[i] != pb[i] {
				t.Fatalf("expected identical frames, diverged at pixel %d", i)
			}
		}
	})
}
