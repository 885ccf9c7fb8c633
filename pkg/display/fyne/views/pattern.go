package views

import (
	"fmt"
	"image"
	"strconv"
	"strings"

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

// Pattern plots the star layer of a single pattern ROM bank across
// the full surface, together with the live scroll records that slide
// the star columns.
type Pattern struct {
	Board *board.Board
}

func (v *Pattern) Title() string { return "Pattern" }

func (v *Pattern) Run(window fyne.Window, events <-chan event.Event) error {
	var bank = 0

	bm := gfx.NewBitmap(board.ScreenWidth, board.ScreenHeight)
	img := image.NewRGBA(image.Rect(0, 0, board.ScreenWidth, board.ScreenHeight))
	sheet := canvas.NewRasterFromImage(img)
	sheet.ScaleMode = canvas.ImageScalePixels
	sheet.SetMinSize(fyne.NewSize(board.ScreenWidth, board.ScreenHeight))

	records := widget.NewTextGrid()

	redraw := func() {
		bm.Fill(video.TransparentPen)
		v.Board.Video.RenderStars(video.Control(bank<<1), bm)
		blitBitmap(bm, v.Board.Palette(), img)
		sheet.Refresh()

		var text strings.Builder
		text.WriteString("Record\tScroll\n")
		ram := v.Board.StarRAM()
		for i := 0; i < video.StarRecordCount; i++ {
			rec := video.StarTableOffset + i*2
			pos := int(ram[rec+1])*2 + int(utils.GetBit(ram[rec], 7))
			text.WriteString(fmt.Sprintf("%d\t%d\n", i, pos))
		}
		records.SetText(strings.TrimRight(text.String(), "\n"))
	}

	bankOptions := make([]string, video.PatternBankCount)
	for i := range bankOptions {
		bankOptions[i] = fmt.Sprintf("Bank %d", i)
	}
	bankDropdown := widget.NewSelect(bankOptions, func(s string) {
		bank, _ = strconv.Atoi(s[5:])
		redraw()
	})
	bankDropdown.Selected = "Bank 0"

	settings := container.NewVBox(
		container.NewGridWithColumns(2, bold("Bank"), bankDropdown),
		bold("Scroll Records"),
		records,
	)

	redraw()
	window.SetContent(container.NewHBox(settings, sheet))

	// handle events
	go func() {
		for {
			select {
			case e := <-events:
				switch e.Type {
				case event.Quit:
					return
				case event.FrameTime:
					// scroll records move every frame, repaint
					redraw()
				}
			}
		}
	}()

	return nil
}
