package gfx

import "fmt"

const (
	// TileSize is the side length of one tile in pixels.
	TileSize = 8
	// tileBytes is the storage of one tile: 8x8 pixels, one byte per pixel.
	tileBytes = TileSize * TileSize
	// groupSize is the pen offset between palette groups of an 8bpp tile.
	groupSize = 256
)

// TileRenderer renders one tile of an indexed tile set into a bitmap.
// Implementations skip source pens equal to transparent, crop to clip,
// and treat an out-of-range tile index as a no-op.
type TileRenderer interface {
	Draw(dst *Bitmap, clip Rect, tile, group int, flipX, flipY bool, x, y int, transparent uint16)
}

// TileSet holds 8x8 tiles in the sprite ROM's packed layout: one byte
// per pixel, rows top to bottom. A 32x32 sprite occupies 16 consecutive
// tiles in raster order.
type TileSet struct {
	pix []byte
}

// NewTileSet wraps data as a tile set. The data is not copied.
func NewTileSet(data []byte) (*TileSet, error) {
	if len(data) == 0 || len(data)%tileBytes != 0 {
		return nil, fmt.Errorf("tile data length %d is not a multiple of %d", len(data), tileBytes)
	}
	return &TileSet{pix: data}, nil
}

// Count returns the number of tiles in the set.
func (t *TileSet) Count() int {
	return len(t.pix) / tileBytes
}

// Pixel returns the raw pen of one pixel of a tile, for inspection UIs.
func (t *TileSet) Pixel(tile, y, x int) uint8 {
	return t.pix[tile*tileBytes+y*TileSize+x]
}

// Draw renders tile with its top-left corner at (x, y), offsetting pens
// by group*256. Transparency is tested against the source pen, before
// the group offset is applied.
func (t *TileSet) Draw(dst *Bitmap, clip Rect, tile, group int, flipX, flipY bool, x, y int, transparent uint16) {
	if tile < 0 || tile >= t.Count() {
		return
	}
	base := uint16(group) * groupSize
	src := t.pix[tile*tileBytes : (tile+1)*tileBytes]
	for ty := 0; ty < TileSize; ty++ {
		dy := y + ty
		if dy < clip.MinY || dy >= clip.MaxY {
			continue
		}
		sy := ty
		if flipY {
			sy = TileSize - 1 - ty
		}
		for tx := 0; tx < TileSize; tx++ {
			dx := x + tx
			if dx < clip.MinX || dx >= clip.MaxX {
				continue
			}
			sx := tx
			if flipX {
				sx = TileSize - 1 - tx
			}
			pen := uint16(src[sy*TileSize+sx])
			if pen == transparent {
				continue
			}
			dst.SetPix(dy, dx, base+pen)
		}
	}
}
