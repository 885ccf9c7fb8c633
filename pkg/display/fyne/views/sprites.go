package views

import (
	"fmt"
	"image"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/internal/gfx"
	"github.com/retroboard/skyfox/internal/video"
	"github.com/retroboard/skyfox/pkg/display/event"
	"github.com/retroboard/skyfox/pkg/utils"
)

// Sprites is a browser for the 256 entries of the sprite table. Every
// entry is previewed at its decoded size, tapping one shows the
// decoded fields.
type Sprites struct {
	Board *board.Board
}

func (v *Sprites) Title() string { return "Sprites" }

func (v *Sprites) Run(window fyne.Window, events <-chan event.Event) error {
	var scaleFactor = 1
	var selectedSprite = 0
	wide := v.Board.Control().WideTileBank()

	// one preview per table entry, 16 entries per row
	grid := container.NewGridWithColumns(16)
	imgs := make([]*canvas.Image, video.SpriteCount)
	entries := make([][video.SpriteEntrySize]byte, video.SpriteCount)

	// scratch bitmap previews render into before palette resolution
	scratch := gfx.NewBitmap(32, 32)

	selectedImage := image.NewRGBA(image.Rect(0, 0, 32, 32))
	selectedRaster := canvas.NewRasterFromImage(selectedImage)
	selectedRaster.ScaleMode = canvas.ImageScalePixels
	selectedRaster.SetMinSize(fyne.NewSize(128, 128))
	selectedInfo := widget.NewTextGrid()

	renderEntry := func(i int, img *image.RGBA) video.Sprite {
		s := v.Board.Sprite(i)
		v.Board.Video.RenderSprite(s, wide, scratch)
		blitBitmap(scratch, v.Board.Palette(), img)
		return s
	}

	selectSprite := func(i int) {
		selectedSprite = i
		s := renderEntry(i, selectedImage)
		selectedRaster.Refresh()

		n := s.Code.Cells()
		selectedInfo.SetText(fmt.Sprintf("Entry\t%d\nY\t%d\nX\t%d\nCode\t0x%04x\nSize\t%dx%d\nTile\t0x%03x\nFlip X\t%s\nFlip Y\t%s",
			i, s.Y, s.X, uint16(s.Code), n*8, n*8, s.Code.HighTile(wide)+s.Code.LowTile(),
			utils.BoolToString(s.Code.FlipX()), utils.BoolToString(s.Code.FlipY())))
	}

	for i := 0; i < video.SpriteCount; i++ {
		entry := i

		img := image.NewRGBA(image.Rect(0, 0, 32, 32))
		t := canvas.NewImageFromImage(img)
		t.ScaleMode = canvas.ImageScalePixels
		t.SetMinSize(fyne.NewSize(32, 32))
		imgs[i] = t

		renderEntry(i, img)
		copy(entries[i][:], v.Board.SpriteRAM()[i*video.SpriteEntrySize:])

		grid.Add(newWrappedTappable(func() { selectSprite(entry) }, t))
	}

	scaleDropdown := widget.NewSelect([]string{"1x", "2x", "4x"}, func(s string) {
		scaleFactor, _ = strconv.Atoi(s[:1])
		for _, img := range imgs {
			img.SetMinSize(fyne.NewSize(float32(32*scaleFactor), float32(32*scaleFactor)))
		}
		grid.Refresh()
	})
	scaleDropdown.Selected = "1x"

	settings := container.NewVBox(
		container.NewGridWithColumns(2, bold("Scale"), scaleDropdown),
		bold("Selected Entry"),
		container.NewHBox(selectedRaster),
		selectedInfo,
		container.NewGridWithColumns(2,
			widget.NewButton("Copy", func() {
				showError(utils.CopyImage(selectedImage), v.Title())
			}),
			widget.NewButton("Save", func() {
				saveImage(selectedImage, fmt.Sprintf("sprite-%d.png", selectedSprite), v.Title())
			}),
		),
	)

	window.SetContent(container.NewHBox(settings, grid))
	selectSprite(0)

	// handle events
	go func() {
		for {
			select {
			case e := <-events:
				switch e.Type {
				case event.Quit:
					return
				case event.FrameTime:
					w := v.Board.Control().WideTileBank()
					bankFlipped := w != wide
					wide = w

					for i, img := range imgs {
						var entry [video.SpriteEntrySize]byte
						copy(entry[:], v.Board.SpriteRAM()[i*video.SpriteEntrySize:])
						if entry == entries[i] && !bankFlipped {
							continue
						}
						entries[i] = entry

						renderEntry(i, img.Image.(*image.RGBA))
						img.Refresh()
					}

					if bankFlipped {
						selectSprite(selectedSprite)
					}
				}
			}
		}
	}()

	return nil
}

// blitBitmap paints a pen bitmap into img, resolving pens through
// pal. The transparent pen becomes a fully transparent pixel.
func blitBitmap(bm *gfx.Bitmap, pal video.Palette, img *image.RGBA) {
	for y := 0; y < bm.H(); y++ {
		for x := 0; x < bm.W(); x++ {
			i := (y*bm.W() + x) * 4
			pen := bm.Pix(y, x)
			if pen == video.TransparentPen {
				img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
				continue
			}

			rgb := pal.RGB(pen)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = rgb[0], rgb[1], rgb[2], 255
		}
	}
}
