package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/pkg/display/event"
)

// Video shows the live contents of the video control latch and lets
// the user blank individual layers.
type Video struct {
	Board *board.Board
}

func (v *Video) Title() string { return "Video" }

func (v *Video) Run(window fyne.Window, events <-chan event.Event) error {
	ctl := v.Board.Control()

	register := mono(fmt.Sprintf("0b%08b", uint8(ctl)), themeColor(theme.ColorNameForeground))

	flip := newStaticCheckbox("Flip screen", ctl.FlipScreen())
	blink := newStaticCheckbox("Blink enabled", ctl.BlinkEnabled())
	wide := newStaticCheckbox("Wide tile bank", ctl.WideTileBank())
	patternPhase := widget.NewLabel(fmt.Sprintf("Pattern phase: %d", ctl.PatternPhase()))
	blinkPhase := widget.NewLabel(fmt.Sprintf("Blink phase: %d", ctl.BlinkPhase()))

	sprites := widget.NewCheck("Sprites", func(b bool) { v.Board.Video.Debug.SpritesDisabled = !b })
	sprites.Checked = !v.Board.Video.Debug.SpritesDisabled
	stars := widget.NewCheck("Stars", func(b bool) { v.Board.Video.Debug.StarsDisabled = !b })
	stars.Checked = !v.Board.Video.Debug.StarsDisabled

	window.SetContent(container.NewVBox(
		newCard("Control", container.NewVBox(
			container.NewHBox(bold("Register"), register),
			flip, blink, wide,
			patternPhase, blinkPhase,
		)),
		newCard("Layers", container.NewVBox(sprites, stars)),
	))

	// handle events
	go func() {
		for {
			select {
			case e := <-events:
				switch e.Type {
				case event.Quit:
					return
				case event.FrameTime:
					c := v.Board.Control()
					if c == ctl {
						continue
					}
					ctl = c

					register.Text = fmt.Sprintf("0b%08b", uint8(ctl))
					register.Refresh()
					flip.SetChecked(ctl.FlipScreen())
					blink.SetChecked(ctl.BlinkEnabled())
					wide.SetChecked(ctl.WideTileBank())
					patternPhase.SetText(fmt.Sprintf("Pattern phase: %d", ctl.PatternPhase()))
					blinkPhase.SetText(fmt.Sprintf("Blink phase: %d", ctl.BlinkPhase()))
				}
			}
		}
	}()

	return nil
}
