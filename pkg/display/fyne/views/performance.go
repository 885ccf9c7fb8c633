package views

import (
	"fmt"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/pkg/display/event"
)

// Performance plots the render time of recent frames against the
// frame budget.
type Performance struct {
}

func (p *Performance) Title() string {
	return "Performance"
}

func (p *Performance) Run(window fyne.Window, events <-chan event.Event) error {
	grid := container.NewVBox()

	// create an image for the frametime plot
	frameTimeImage := image.NewRGBA(image.Rect(0, 0, 640, 480))
	c := vgimg.NewWith(vgimg.UseImage(frameTimeImage))

	frameTimeCanvas := canvas.NewRasterFromImage(c.Image())
	frameTimeCanvas.ScaleMode = canvas.ImageScalePixels
	frameTimeCanvas.SetMinSize(fyne.NewSize(640, 480))

	status := widget.NewLabel("")

	grid.Add(frameTimeCanvas)
	grid.Add(status)
	window.SetContent(grid)

	redraw := func(frameTimes []time.Duration) {
		frameTimePlot := plot.New()
		frameTimePlot.Title.Text = "Frame Time"
		frameTimePlot.X.Label.Text = "frame"
		frameTimePlot.Y.Label.Text = "ms"

		xys := make(plotter.XYs, len(frameTimes))
		var total time.Duration
		for i, frameTime := range frameTimes {
			xys[i].X = float64(i)
			xys[i].Y = float64(frameTime) / float64(time.Millisecond)
			total += frameTime
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return
		}

		// redraw the plot
		frameTimePlot.Add(line)
		frameTimePlot.Draw(draw.New(c))
		frameTimeCanvas.Refresh()

		if len(frameTimes) > 0 {
			avg := total / time.Duration(len(frameTimes))
			status.SetText(fmt.Sprintf("avg %.2fms of %.2fms frame budget",
				float64(avg)/float64(time.Millisecond), float64(board.FrameTime)/float64(time.Millisecond)))
		}
	}

	go func() {
		for {
			select {
			case e := <-events:
				switch e.Type {
				case event.Quit:
					return
				case event.FrameTime:
					// get the list of frame times from the event
					redraw(e.Data.([]time.Duration))
				}
			}
		}
	}()

	return nil
}
