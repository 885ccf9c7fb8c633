package gfx

import (
	"testing"
)

// rampTile builds one tile where the pen at (y, x) is y*8+x.
func rampTile() []byte {
	data := make([]byte, tileBytes)
	for i := range data {
		data[i] = uint8(i)
	}
	return data
}

func TestNewTileSet(t *testing.T) {
	t.Run("rejects partial tiles", func(t *testing.T) {
		if _, err := NewTileSet(make([]byte, 63)); err == nil {
			t.Errorf("expected error for 63 byte tile data, got nil")
		}
		if _, err := NewTileSet(nil); err == nil {
			t.Errorf("expected error for empty tile data, got nil")
		}
	})
	t.Run("counts tiles", func(t *testing.T) {
		ts, err := NewTileSet(make([]byte, 64*16))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ts.Count() != 16 {
			t.Errorf("expected 16 tiles, got %d", ts.Count())
		}
	})
}

func TestTileSetDraw(t *testing.T) {
	newTarget := func() *Bitmap {
		b := NewBitmap(16, 16)
		b.Fill(0xff)
		return b
	}
	ts, err := NewTileSet(rampTile())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Run("places tile at origin", func(t *testing.T) {
		b := newTarget()
		ts.Draw(b, b.Rect(), 0, 0, false, false, 4, 2, 0xff)
		if b.Pix(2, 4) != 0 {
			t.Errorf("expected pen 0 at (2,4), got %d", b.Pix(2, 4))
		}
		if b.Pix(3, 5) != 9 {
			t.Errorf("expected pen 9 at (3,5), got %d", b.Pix(3, 5))
		}
		if b.Pix(9, 11) != 63 {
			t.Errorf("expected pen 63 at (9,11), got %d", b.Pix(9, 11))
		}
		if b.Pix(1, 4) != 0xff || b.Pix(2, 12) != 0xff {
			t.Errorf("expected pixels outside the tile to keep the fill pen")
		}
	})

	t.Run("flip x mirrors columns", func(t *testing.T) {
		b := newTarget()
		ts.Draw(b, b.Rect(), 0, 0, true, false, 4, 2, 0xff)
		if b.Pix(2, 4) != 7 {
			t.Errorf("expected pen 7 at (2,4), got %d", b.Pix(2, 4))
		}
		if b.Pix(2, 11) != 0 {
			t.Errorf("expected pen 0 at (2,11), got %d", b.Pix(2, 11))
		}
	})

	t.Run("flip y mirrors rows", func(t *testing.T) {
		b := newTarget()
		ts.Draw(b, b.Rect(), 0, 0, false, true, 4, 2, 0xff)
		if b.Pix(2, 4) != 56 {
			t.Errorf("expected pen 56 at (2,4), got %d", b.Pix(2, 4))
		}
		if b.Pix(9, 4) != 0 {
			t.Errorf("expected pen 0 at (9,4), got %d", b.Pix(9, 4))
		}
	})

	t.Run("skips transparent source pens", func(t *testing.T) {
		b := newTarget()
		ts.Draw(b, b.Rect(), 0, 0, false, false, 0, 0, 9)
		if b.Pix(1, 1) != 0xff {
			t.Errorf("expected pen 9 to be skipped, got %d", b.Pix(1, 1))
		}
		if b.Pix(1, 0) != 8 {
			t.Errorf("expected pen 8 at (1,0), got %d", b.Pix(1, 0))
		}
	})

	t.Run("group offsets written pens but not transparency", func(t *testing.T) {
		b := newTarget()
		ts.Draw(b, b.Rect(), 0, 1, false, false, 0, 0, 9)
		if b.Pix(1, 0) != 256+8 {
			t.Errorf("expected pen 264 at (1,0), got %d", b.Pix(1, 0))
		}
		// transparency matches the source pen even with a group offset
		if b.Pix(1, 1) != 0xff {
			t.Errorf("expected source pen 9 to be skipped, got %d", b.Pix(1, 1))
		}
	})

	t.Run("crops to clip rectangle", func(t *testing.T) {
		b := newTarget()
		ts.Draw(b, NewRect(6, 3, 12, 9), 0, 0, false, false, 4, 2, 0xff)
		if b.Pix(3, 6) != 10 {
			t.Errorf("expected pen 10 at (3,6), got %d", b.Pix(3, 6))
		}
		if b.Pix(2, 4) != 0xff {
			t.Errorf("expected (2,4) outside clip to keep fill pen, got %d", b.Pix(2, 4))
		}
		if b.Pix(9, 11) != 0xff {
			t.Errorf("expected (9,11) outside clip to keep fill pen, got %d", b.Pix(9, 11))
		}
	})

	t.Run("crops negative origins", func(t *testing.T) {
		b := newTarget()
		ts.Draw(b, b.Rect(), 0, 0, false, false, -3, -1, 0xff)
		if b.Pix(0, 0) != 11 {
			t.Errorf("expected pen 11 at (0,0), got %d", b.Pix(0, 0))
		}
	})

	t.Run("out of range tile is a no-op", func(t *testing.T) {
		b := newTarget()
		ts.Draw(b, b.Rect(), 1, 0, false, false, 0, 0, 0xff)
		ts.Draw(b, b.Rect(), -1, 0, false, false, 0, 0, 0xff)
		for y := 0; y < b.H(); y++ {
			for x := 0; x < b.W(); x++ {
				if b.Pix(y, x) != 0xff {
					t.Fatalf("expected untouched bitmap, got pen %d at (%d,%d)", b.Pix(y, x), y, x)
				}
			}
		}
	})
}

func TestBitmap(t *testing.T) {
	t.Run("fill and read back", func(t *testing.T) {
		b := NewBitmap(4, 3)
		b.Fill(0x1f)
		if b.Pix(2, 3) != 0x1f {
			t.Errorf("expected pen 0x1f, got %d", b.Pix(2, 3))
		}
		b.SetPix(1, 2, 7)
		if b.Pix(1, 2) != 7 {
			t.Errorf("expected pen 7, got %d", b.Pix(1, 2))
		}
		if len(b.Pixels()) != 12 {
			t.Errorf("expected 12 pixels, got %d", len(b.Pixels()))
		}
	})
	t.Run("rect covers surface", func(t *testing.T) {
		b := NewBitmap(512, 256)
		r := b.Rect()
		if r.W() != 512 || r.H() != 256 {
			t.Errorf("expected 512x256 rect, got %dx%d", r.W(), r.H())
		}
		if !r.Contains(0, 0) || !r.Contains(511, 255) {
			t.Errorf("expected corners inside rect")
		}
		if r.Contains(512, 0) || r.Contains(0, 256) || r.Contains(-1, 0) {
			t.Errorf("expected out of range points outside rect")
		}
	})
}
