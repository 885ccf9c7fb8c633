package video

import (
	"testing"

	"github.com/retroboard/skyfox/internal/gfx"
)

func TestRenderFrame(t *testing.T) {
	// one solid tile with a transparent hole at tile pixel (0,1)
	tileROM := make([]byte, 64)
	for i := range tileROM {
		tileROM[i] = 0x01
	}
	tileROM[1] = 0xff
	ts, err := gfx.NewTileSet(tileROM)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	spriteRAM := make([]byte, SpriteRAMSize)
	starRAM := make([]byte, StarRAMSize)
	pattern := make([]byte, PatternROMSize)
	v := New(spriteRAM, starRAM, pattern, ts)

	// star 0 lands under the sprite hole at (1,124), star 1 under a
	// solid sprite pixel at (1,123)
	starRAM[StarTableOffset] = 0x80 // record 0, position 1
	pattern[0] = 0x06
	pattern[1] = 0x10
	pattern[2] = 0x05
	pattern[3] = 0x10
	// 8x8 sprite of tile 0 at (123,1)
	setSprite(spriteRAM, 0, 1, 61, 0x0001)

	dst := gfx.NewBitmap(512, 256)

	t.Run("sprites win over stars", func(t *testing.T) {
		v.RenderFrame(0, dst, dst.Rect())
		if got := dst.Pix(1, 123); got != 0x01 {
			t.Errorf("expected sprite pen 1 at (1,123), got %d", got)
		}
	})

	t.Run("stars show through transparent sprite pens", func(t *testing.T) {
		v.RenderFrame(0, dst, dst.Rect())
		if got := dst.Pix(1, 124); got != 0x06 {
			t.Errorf("expected star pen 6 at (1,124), got %d", got)
		}
	})

	t.Run("background pen elsewhere", func(t *testing.T) {
		v.RenderFrame(0, dst, dst.Rect())
		if got := dst.Pix(200, 400); got != TransparentPen {
			t.Errorf("expected background pen 0xff at (200,400), got %d", got)
		}
	})

	t.Run("sprite layer can be disabled", func(t *testing.T) {
		v.Debug.SpritesDisabled = true
		v.RenderFrame(0, dst, dst.Rect())
		v.Debug.SpritesDisabled = false
		if got := dst.Pix(1, 123); got != 0x05 {
			t.Errorf("expected star pen 5 with sprites disabled, got %d", got)
		}
	})

	t.Run("star layer can be disabled", func(t *testing.T) {
		v.Debug.StarsDisabled = true
		v.RenderFrame(0, dst, dst.Rect())
		v.Debug.StarsDisabled = false
		if got := dst.Pix(1, 124); got != TransparentPen {
			t.Errorf("expected background pen with stars disabled, got %d", got)
		}
		if got := dst.Pix(1, 123); got != 0x01 {
			t.Errorf("expected sprite pen 1 with stars disabled, got %d", got)
		}
	})
}

func TestPalette(t *testing.T) {
	t.Run("grey fallback darkens high pens", func(t *testing.T) {
		p := GreyPalette()
		if p.RGB(0) != [3]uint8{255, 255, 255} {
			t.Errorf("expected pen 0 white, got %v", p.RGB(0))
		}
		if p.RGB(TransparentPen) != [3]uint8{0, 0, 0} {
			t.Errorf("expected background pen black, got %v", p.RGB(TransparentPen))
		}
	})

	t.Run("parses raw rgb dumps", func(t *testing.T) {
		data := make([]byte, 768)
		data[3], data[4], data[5] = 10, 20, 30
		p, err := PaletteFrom(data)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.RGB(1) != [3]uint8{10, 20, 30} {
			t.Errorf("expected pen 1 rgb 10,20,30, got %v", p.RGB(1))
		}
	})

	t.Run("rejects short dumps", func(t *testing.T) {
		if _, err := PaletteFrom(make([]byte, 100)); err == nil {
			t.Errorf("expected error for short palette, got nil")
		}
	})

	t.Run("pens resolve modulo the palette", func(t *testing.T) {
		p := GreyPalette()
		if p.RGB(0x101) != p.RGB(1) {
			t.Errorf("expected pen 0x101 to resolve like pen 1")
		}
	})
}
