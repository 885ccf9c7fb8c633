package video

import (
	"testing"

	"github.com/retroboard/skyfox/internal/gfx"
)

// blit records one call into the tile renderer.
type blit struct {
	tile, group  int
	flipX, flipY bool
	x, y         int
	transparent  uint16
}

type recordingRenderer struct {
	blits []blit
}

func (r *recordingRenderer) Draw(_ *gfx.Bitmap, _ gfx.Rect, tile, group int, flipX, flipY bool, x, y int, transparent uint16) {
	r.blits = append(r.blits, blit{tile: tile, group: group, flipX: flipX, flipY: flipY, x: x, y: y, transparent: transparent})
}

// setSprite writes one raw table entry.
func setSprite(ram []byte, i int, y, xHigh uint8, code uint16) {
	ram[i*SpriteEntrySize+0] = y
	ram[i*SpriteEntrySize+1] = xHigh
	ram[i*SpriteEntrySize+2] = uint8(code)
	ram[i*SpriteEntrySize+3] = uint8(code >> 8)
}

func newTestVideo(tiles gfx.TileRenderer) (*Video, []byte) {
	spriteRAM := make([]byte, SpriteRAMSize)
	return New(spriteRAM, make([]byte, StarRAMSize), make([]byte, PatternROMSize), tiles), spriteRAM
}

func TestCodeDecode(t *testing.T) {
	t.Run("size classes", func(t *testing.T) {
		tests := []struct {
			code  Code
			cells int
		}{
			{0x0088, 4},
			{0x0008, 2},
			{0x0000, 1},
			{0x0080, 1},
			{0x8008, 2},
		}
		for _, tt := range tests {
			if got := tt.code.Cells(); got != tt.cells {
				t.Errorf("expected code %04x to have %d cells, got %d", uint16(tt.code), tt.cells, got)
			}
		}
	})

	t.Run("low tile per size class", func(t *testing.T) {
		if got := Code(0x00f8).LowTile(); got != 0 {
			t.Errorf("expected 32x32 low tile 0, got %d", got)
		}
		// 16x16 quadrant corners from bits 4 and 5
		quads := map[Code]int{0x0008: 0, 0x0018: 2, 0x0028: 8, 0x0038: 10}
		for code, want := range quads {
			if got := code.LowTile(); got != want {
				t.Errorf("expected code %04x low tile %d, got %d", uint16(code), want, got)
			}
		}
		// an 8x8 code addresses any of the 16 cells directly
		for cell := 0; cell < 16; cell++ {
			code := Code(cell << 4)
			if code.Cells() != 1 {
				t.Fatalf("expected code %04x to be 8x8", uint16(code))
			}
			if got := code.LowTile(); got != cell {
				t.Errorf("expected 8x8 low tile %d, got %d", cell, got)
			}
		}
	})

	t.Run("high tile bank shift", func(t *testing.T) {
		if got := Code(0x8000).HighTile(false); got != 0x800 {
			t.Errorf("expected narrow bank tile 0x800, got %#x", got)
		}
		if got := Code(0x8000).HighTile(true); got != 0x1000 {
			t.Errorf("expected wide bank tile 0x1000, got %#x", got)
		}
		if got := Code(0x0100).HighTile(false); got != 0x10 {
			t.Errorf("expected macro tile 1 base 0x10, got %#x", got)
		}
		if got := Code(0x7f00).HighTile(false); got != 0x7f0 {
			t.Errorf("expected macro tile 0x7f base 0x7f0, got %#x", got)
		}
	})

	t.Run("flips and x low bit", func(t *testing.T) {
		c := Code(0x0007)
		if c.XLow() != 1 || !c.FlipX() || !c.FlipY() {
			t.Errorf("expected xlow 1 and both flips for code %04x", uint16(c))
		}
		c = Code(0x0000)
		if c.XLow() != 0 || c.FlipX() || c.FlipY() {
			t.Errorf("expected no flips for code 0")
		}
	})
}

func TestSpriteAt(t *testing.T) {
	ram := make([]byte, SpriteRAMSize)
	setSprite(ram, 3, 10, 100, 0x4021)
	s := SpriteAt(ram, 3)
	if s.Y != 10 {
		t.Errorf("expected y 10, got %d", s.Y)
	}
	if s.X != 201 { // 100<<1 | code bit 0
		t.Errorf("expected x 201, got %d", s.X)
	}
	if s.Code != 0x4021 {
		t.Errorf("expected code 0x4021, got %04x", uint16(s.Code))
	}
}

func TestDrawSprites(t *testing.T) {
	dst := gfx.NewBitmap(512, 256)

	t.Run("walks every table entry", func(t *testing.T) {
		r := &recordingRenderer{}
		v, _ := newTestVideo(r)
		v.drawSprites(0, dst, dst.Rect())
		// 256 8x8 entries, each cell blitted twice
		if len(r.blits) != 512 {
			t.Errorf("expected 512 blits, got %d", len(r.blits))
		}
	})

	t.Run("32x32 blits 16 cells in raster order", func(t *testing.T) {
		r := &recordingRenderer{}
		v, ram := newTestVideo(r)
		setSprite(ram, 0, 100, 50, 0x0088)
		v.drawSprites(0, dst, dst.Rect())

		entry := r.blits[:32]
		if len(r.blits) != 32+510 {
			t.Fatalf("expected 542 blits, got %d", len(r.blits))
		}
		for cell := 0; cell < 16; cell++ {
			main := entry[cell*2]
			if main.tile != cell {
				t.Errorf("expected cell %d tile %d, got %d", cell, cell, main.tile)
			}
			wantX := 100 + (cell%4)*8
			wantY := 100 + (cell/4)*8
			if main.x != wantX || main.y != wantY {
				t.Errorf("expected cell %d at (%d,%d), got (%d,%d)", cell, wantX, wantY, main.x, main.y)
			}
			if main.transparent != TransparentPen {
				t.Errorf("expected transparent pen %#x, got %#x", TransparentPen, main.transparent)
			}
		}
	})

	t.Run("16x16 blits a quadrant", func(t *testing.T) {
		r := &recordingRenderer{}
		v, ram := newTestVideo(r)
		setSprite(ram, 0, 64, 16, 0x0038)
		v.drawSprites(0, dst, dst.Rect())

		wantTiles := []int{10, 11, 14, 15}
		for i, want := range wantTiles {
			if got := r.blits[i*2].tile; got != want {
				t.Errorf("expected blit %d tile %d, got %d", i, want, got)
			}
		}
		wantPos := [][2]int{{32, 64}, {40, 64}, {32, 72}, {40, 72}}
		for i, want := range wantPos {
			if r.blits[i*2].x != want[0] || r.blits[i*2].y != want[1] {
				t.Errorf("expected blit %d at (%d,%d), got (%d,%d)", i, want[0], want[1], r.blits[i*2].x, r.blits[i*2].y)
			}
		}
	})

	t.Run("8x8 blits one cell", func(t *testing.T) {
		r := &recordingRenderer{}
		v, ram := newTestVideo(r)
		setSprite(ram, 0, 8, 4, 0x0070)
		v.drawSprites(0, dst, dst.Rect())

		if r.blits[0].tile != 7 {
			t.Errorf("expected tile 7, got %d", r.blits[0].tile)
		}
		if r.blits[0].x != 8 || r.blits[0].y != 8 {
			t.Errorf("expected blit at (8,8), got (%d,%d)", r.blits[0].x, r.blits[0].y)
		}
	})

	t.Run("every blit has a wraparound duplicate", func(t *testing.T) {
		r := &recordingRenderer{}
		v, ram := newTestVideo(r)
		setSprite(ram, 0, 250, 80, 0x0088)
		setSprite(ram, 1, 0, 10, 0x0038)
		v.drawSprites(0, dst, dst.Rect())

		if len(r.blits)%2 != 0 {
			t.Fatalf("expected blits in pairs, got %d", len(r.blits))
		}
		for i := 0; i < len(r.blits); i += 2 {
			main, dup := r.blits[i], r.blits[i+1]
			if dup.x != main.x || dup.tile != main.tile {
				t.Errorf("expected duplicate of blit %d to share x and tile", i/2)
			}
			if main.y-dup.y != dst.H() {
				t.Errorf("expected duplicate %d a full surface above, got dy %d", i/2, main.y-dup.y)
			}
		}
	})

	t.Run("wide bank shifts the high tile", func(t *testing.T) {
		r := &recordingRenderer{}
		v, ram := newTestVideo(r)
		setSprite(ram, 0, 0, 0, 0x8000)

		v.drawSprites(0, dst, dst.Rect())
		if r.blits[0].tile != 0x800 {
			t.Errorf("expected tile 0x800 on the narrow bank, got %#x", r.blits[0].tile)
		}

		r.blits = nil
		v.drawSprites(Control(0x80), dst, dst.Rect())
		if r.blits[0].tile != 0x1000 {
			t.Errorf("expected tile 0x1000 on the wide bank, got %#x", r.blits[0].tile)
		}
	})
}

func TestDrawSpritesFlipScreen(t *testing.T) {
	// mirror math uses the destination surface, here the visible
	// 256x224 of the original screen
	dst := gfx.NewBitmap(256, 224)
	r := &recordingRenderer{}
	v, ram := newTestVideo(r)
	setSprite(ram, 0, 50, 30, 0x0088)
	v.drawSprites(Control(0x01), dst, dst.Rect())

	first := r.blits[0]
	// origin mirrors to (width-x-32, height-y-32), walk order reverses
	wantX := 256 - 60 - 32 + 24
	wantY := 224 - 50 - 32 + 24
	if first.x != wantX || first.y != wantY {
		t.Errorf("expected first blit at (%d,%d), got (%d,%d)", wantX, wantY, first.x, first.y)
	}
	if first.tile != 0 {
		t.Errorf("expected reversed walk to start at tile 0, got %d", first.tile)
	}
	if !first.flipX || !first.flipY {
		t.Errorf("expected cell flips inverted on a flipped screen")
	}
	last := r.blits[30]
	if last.x != 256-60-32 || last.y != 224-50-32 {
		t.Errorf("expected last blit at the mirrored origin, got (%d,%d)", last.x, last.y)
	}
	if last.tile != 15 {
		t.Errorf("expected reversed walk to end at tile 15, got %d", last.tile)
	}
}
