package utils

import (
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// RGBToImage wraps a packed RGB24 frame as an RGBA image.
func RGBToImage(data []byte, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.Pix[i*4] = data[i*3]
		img.Pix[i*4+1] = data[i*3+1]
		img.Pix[i*4+2] = data[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// ScaleImage resizes img by an integer factor with nearest neighbour
// sampling, keeping the hard pixel edges of the source.
func ScaleImage(img image.Image, factor int) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

// SmoothScaleImage resizes img by factor with Catmull-Rom sampling,
// for exports where hard edges are unwanted.
func SmoothScaleImage(img image.Image, factor int) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

// SaveImageTo writes img to filename as a PNG.
func SaveImageTo(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
