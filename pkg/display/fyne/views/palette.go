package views

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/internal/video"
	"github.com/retroboard/skyfox/pkg/display/event"
)

// Palette shows all 256 pens of the board palette as a 16x16 swatch
// grid. Pen 0xff doubles as the transparent pen of the sprite layer.
type Palette struct {
	Board *board.Board
}

func (p *Palette) Title() string { return "Palette" }

func (p *Palette) Run(window fyne.Window, events <-chan event.Event) error {
	pal := p.Board.Palette()

	// one rectangle per pen, 16 pens per row
	grid := container.NewGridWithColumns(16)
	rects := make([]*canvas.Rectangle, 256)

	// create a rectangle for the selected pen (larger than the others)
	selectedPen := canvas.NewRectangle(color.White)
	selectedPen.SetMinSize(fyne.NewSize(48, 48))
	selectedPen.CornerRadius = 5

	selectedPenInfo := widget.NewTextGrid()

	selectPen := func(pen int) {
		rgb := pal.RGB(uint16(pen))
		selectedPen.FillColor = toRGB(rgb)
		selectedPen.Refresh()

		text := fmt.Sprintf("Pen\t0x%02x\n#%02x%02x%02x", pen, rgb[0], rgb[1], rgb[2])
		if pen == video.TransparentPen {
			text += "\nTransparent"
		}
		selectedPenInfo.SetText(text)
	}

	for i := 0; i < 256; i++ {
		pen := i
		r := canvas.NewRectangle(toRGB(pal.RGB(uint16(pen))))
		r.SetMinSize(fyne.NewSize(24, 24))
		rects[i] = r
		grid.Add(newWrappedTappable(func() { selectPen(pen) }, r))
	}
	selectPen(0)

	window.SetContent(container.NewVBox(
		grid,
		widget.NewSeparator(),
		container.NewHBox(selectedPen, selectedPenInfo),
	))

	// the palette only changes when a new dump is loaded, so compare
	// before repainting the grid
	go func() {
		for {
			select {
			case e := <-events:
				switch e.Type {
				case event.Quit:
					return
				case event.FrameTime:
					cur := p.Board.Palette()
					if cur == pal {
						continue
					}
					pal = cur

					for i, r := range rects {
						r.FillColor = toRGB(pal.RGB(uint16(i)))
						r.Refresh()
					}
				}
			}
		}
	}()

	return nil
}

// toRGB converts a 3 element uint8 array to a color.RGBA
// with an alpha value of 255 (opaque)
func toRGB(rgb [3]uint8) color.RGBA {
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}
}
