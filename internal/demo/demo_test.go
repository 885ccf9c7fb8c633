package demo

import (
	"testing"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/internal/gfx"
	"github.com/retroboard/skyfox/internal/video"
	"github.com/retroboard/skyfox/pkg/log"
)

func TestTileROM(t *testing.T) {
	rom := TileROM()

	if len(rom) != 16*16*64 {
		t.Fatalf("expected %d bytes, got %d", 16*16*64, len(rom))
	}
	if _, err := gfx.NewTileSet(rom); err != nil {
		t.Errorf("expected a loadable tile rom, got %v", err)
	}
	for i, pen := range rom {
		if pen != video.TransparentPen && pen >= 0x80 {
			t.Fatalf("expected pens below 0x80, got %#x at %d", pen, i)
		}
	}
}

func TestPatternROM(t *testing.T) {
	rom := PatternROM()

	if len(rom) != video.PatternROMSize {
		t.Fatalf("expected %d bytes, got %d", video.PatternROMSize, len(rom))
	}
	for i := 0; i < len(rom); i += 2 {
		if pen := rom[i]; pen != video.TransparentPen && pen >= 0x40 {
			t.Fatalf("expected star pens below 0x40, got %#x at %d", pen, i)
		}
	}
}

func TestHook(t *testing.T) {
	b, err := board.New(TileROM(), PatternROM(),
		board.WithLogger(log.NewNullLogger()), board.WithPalette(Palette()))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	hook := Hook()
	hook(b)

	t.Run("control latch", func(t *testing.T) {
		ctl := b.Control()
		if !ctl.BlinkEnabled() {
			t.Errorf("expected blink enabled, got %#08b", uint8(ctl))
		}
		if ctl.PatternPhase() != 0 {
			t.Errorf("expected pattern phase 0 on the first frame, got %d", ctl.PatternPhase())
		}
	})

	t.Run("squadron", func(t *testing.T) {
		s := b.Sprite(0)
		if s.Code.Cells() != 4 {
			t.Errorf("expected 32x32 ships, got %d cells", s.Code.Cells())
		}
		if s.X != 0 || s.Y != 0x20 {
			t.Errorf("expected ship 0 at (0, 0x20), got (%d, %#x)", s.X, s.Y)
		}
	})

	t.Run("animates between frames", func(t *testing.T) {
		before := b.Sprite(0).X
		b.RenderFrame()
		hook(b)
		if after := b.Sprite(0).X; after == before {
			t.Errorf("expected ship 0 to move, got x %d twice", after)
		}
	})
}
