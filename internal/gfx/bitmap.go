package gfx

// Bitmap is a pen-indexed framebuffer. Pens are palette indices rather
// than colours; hosts resolve them through a palette when presenting a
// frame. Coordinates follow the hardware convention of (y, x).
type Bitmap struct {
	w, h int
	pix  []uint16
}

// NewBitmap allocates a w by h bitmap with every pen set to 0.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{w: w, h: h, pix: make([]uint16, w*h)}
}

func (b *Bitmap) W() int { return b.w }
func (b *Bitmap) H() int { return b.h }

// Rect returns the clip covering the whole surface.
func (b *Bitmap) Rect() Rect {
	return Rect{MaxX: b.w, MaxY: b.h}
}

// Fill sets every pixel to pen.
func (b *Bitmap) Fill(pen uint16) {
	for i := range b.pix {
		b.pix[i] = pen
	}
}

// SetPix writes pen at (y, x).
func (b *Bitmap) SetPix(y, x int, pen uint16) {
	b.pix[y*b.w+x] = pen
}

// Pix returns the pen at (y, x).
func (b *Bitmap) Pix(y, x int) uint16 {
	return b.pix[y*b.w+x]
}

// Pixels returns the row-major backing slice.
func (b *Bitmap) Pixels() []uint16 {
	return b.pix
}

// Rect is a clip rectangle with inclusive min and exclusive max bounds.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// NewRect returns the rectangle [minX, maxX) x [minY, maxY).
func NewRect(minX, minY, maxX, maxY int) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func (r Rect) W() int { return r.MaxX - r.MinX }
func (r Rect) H() int { return r.MaxY - r.MinY }

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}
