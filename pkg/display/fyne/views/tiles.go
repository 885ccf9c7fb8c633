package views

import (
	"fmt"
	"image"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/pkg/display/event"
	"github.com/retroboard/skyfox/pkg/utils"
)

// tilesPerPage is one sheet of 16x16 cells, a page of the sprite ROM.
const tilesPerPage = 256

// Tiles pages through the sprite ROM as sheets of 8x8 cells. Tapping
// a cell resolves it back to its macro tile and cell number, the
// coordinates sprite codes address it by.
type Tiles struct {
	Board *board.Board
}

func (v *Tiles) Title() string { return "Tiles" }

func (v *Tiles) Run(window fyne.Window, events <-chan event.Event) error {
	ts := v.Board.Tiles()
	pal := v.Board.Palette()

	pages := (ts.Count() + tilesPerPage - 1) / tilesPerPage

	var page = 0
	var scaleFactor = 2

	// the whole page renders into a single image, 16 tiles to a side
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	sheet := canvas.NewRasterFromImage(img)
	sheet.ScaleMode = canvas.ImageScalePixels
	sheet.SetMinSize(fyne.NewSize(float32(128*scaleFactor), float32(128*scaleFactor)))

	tileInfo := widget.NewTextGrid()

	drawPage := func() {
		for t := 0; t < tilesPerPage; t++ {
			tile := page*tilesPerPage + t
			ox, oy := (t%16)*8, (t/16)*8
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					i := ((oy+y)*128 + ox + x) * 4
					if tile >= ts.Count() {
						img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
						continue
					}

					rgb := pal.RGB(uint16(ts.Pixel(tile, y, x)))
					img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = rgb[0], rgb[1], rgb[2], 255
				}
			}
		}
		sheet.Refresh()
	}

	selectTile := func(tile int) {
		if tile >= ts.Count() {
			return
		}
		tileInfo.SetText(fmt.Sprintf("Tile\t0x%03x\nOffset\t0x%05x\nMacro\t0x%02x cell %d",
			tile, tile*64, tile/16, tile%16))
	}

	tap := newTappableImage(img, sheet, func(e *fyne.PointEvent) {
		tx := utils.Clamp(0, int(e.Position.X)/(8*scaleFactor), 15)
		ty := utils.Clamp(0, int(e.Position.Y)/(8*scaleFactor), 15)
		selectTile(page*tilesPerPage + ty*16 + tx)
	})

	pageOptions := make([]string, pages)
	for i := range pageOptions {
		pageOptions[i] = fmt.Sprintf("Page %d", i)
	}
	pageDropdown := widget.NewSelect(pageOptions, func(s string) {
		page, _ = strconv.Atoi(s[5:])
		drawPage()
	})
	pageDropdown.Selected = "Page 0"

	main := container.NewHBox()

	scaleDropdown := widget.NewSelect([]string{"1x", "2x", "3x", "4x"}, func(s string) {
		scaleFactor, _ = strconv.Atoi(s[:1])
		sheet.SetMinSize(fyne.NewSize(float32(128*scaleFactor), float32(128*scaleFactor)))

		// resize window to fit the new sheet
		window.Resize(main.MinSize())
	})
	scaleDropdown.Selected = "2x"

	settings := container.NewVBox(
		container.NewGridWithColumns(2, bold("Page"), pageDropdown),
		container.NewGridWithColumns(2, bold("Scale"), scaleDropdown),
		bold("Selected Tile"),
		tileInfo,
		container.NewGridWithColumns(2,
			widget.NewButton("Copy Page", func() {
				showError(utils.CopyImage(img), v.Title())
			}),
			widget.NewButton("Save Page", func() {
				if err := utils.SaveImage(img); err != nil {
					showError(err, v.Title())
				}
			}),
		),
	)

	main.Add(settings)
	main.Add(tap)

	drawPage()
	window.SetContent(main)

	// the ROM never changes, only a palette swap needs a repaint
	go func() {
		for {
			select {
			case e := <-events:
				switch e.Type {
				case event.Quit:
					return
				case event.FrameTime:
					cur := v.Board.Palette()
					if cur == pal {
						continue
					}
					pal = cur
					drawPage()
				}
			}
		}
	}()

	return nil
}

type tappableImage struct {
	widget.BaseWidget
	c          *canvas.Raster
	img        *image.RGBA
	tapHandler func(event *fyne.PointEvent)
}

func (t *tappableImage) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (t *tappableImage) Tapped(at *fyne.PointEvent) {
	t.tapHandler(at)
}

func (t *tappableImage) TappedSecondary(*fyne.PointEvent) {
	// do nothing
}

func (t *tappableImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.c)
}

func newTappableImage(img *image.RGBA, c *canvas.Raster, tapHandler func(event *fyne.PointEvent)) *tappableImage {
	t := &tappableImage{img: img, tapHandler: tapHandler, c: c}
	t.ExtendBaseWidget(t)
	return t
}
