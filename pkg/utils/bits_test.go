package utils

import (
	"testing"
)

func TestBits(t *testing.T) {
	t.Run("set and clear", func(t *testing.T) {
		v := SetBit(0, 3)
		if v != 0x08 {
			t.Errorf("expected 0x08, got %#x", v)
		}
		if ClearBit(v, 3) != 0 {
			t.Errorf("expected 0, got %#x", ClearBit(v, 3))
		}
	})
	t.Run("test and get", func(t *testing.T) {
		if !TestBit(0x80, 7) || TestBit(0x80, 6) {
			t.Errorf("expected only bit 7 set in 0x80")
		}
		if GetBit(0x40, 6) != 1 || GetBit(0x40, 5) != 0 {
			t.Errorf("expected bit 6 of 0x40 to be 1")
		}
	})
}

func TestBytesToUint16(t *testing.T) {
	if got := BytesToUint16(0x12, 0x34); got != 0x1234 {
		t.Errorf("expected 0x1234, got %#x", got)
	}
	hi, lo := Uint16ToBytes(0xbeef)
	if hi != 0xbe || lo != 0xef {
		t.Errorf("expected 0xbe 0xef, got %#x %#x", hi, lo)
	}
}

func TestRGBToImage(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6}
	img := RGBToImage(data, 2, 1)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("expected 2x1 image, got %v", img.Bounds())
	}
	r, g, b, a := img.At(1, 0).RGBA()
	if r>>8 != 4 || g>>8 != 5 || b>>8 != 6 || a>>8 != 0xff {
		t.Errorf("expected rgb 4,5,6 opaque, got %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(0, 5, 10) != 5 || Clamp(0, -1, 10) != 0 || Clamp(0, 11, 10) != 10 {
		t.Errorf("expected clamp to bound values to [0,10]")
	}
}
