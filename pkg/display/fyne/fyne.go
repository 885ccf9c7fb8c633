//go:build !test

// Package fyne implements the desktop display driver: the game
// window plus a set of inspection views reachable from the main
// menu.
package fyne

import (
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/pkg/display"
	"github.com/retroboard/skyfox/pkg/display/event"
	"github.com/retroboard/skyfox/pkg/display/fyne/themes"
	"github.com/retroboard/skyfox/pkg/display/fyne/views"
	"github.com/retroboard/skyfox/pkg/emulator"
	"github.com/retroboard/skyfox/pkg/log"
	"github.com/retroboard/skyfox/pkg/utils"
)

var driver = &Driver{logView: &views.Log{}}

func init() {
	display.Install("fyne", driver, []display.DriverOption{
		{Name: "scale", Default: 2.0, Value: &driver.scale, Description: "window scale factor", Type: "float"},
	})
}

// keyHandlers maps debug keys to driver actions.
var keyHandlers = map[fyne.KeyName]func(*Driver){
	fyne.Key1: func(d *Driver) {
		if d.board != nil {
			d.board.Video.Debug.SpritesDisabled = !d.board.Video.Debug.SpritesDisabled
		}
	},
	fyne.Key2: func(d *Driver) {
		if d.board != nil {
			d.board.Video.Debug.StarsDisabled = !d.board.Video.Debug.StarsDisabled
		}
	},
	fyne.KeyP: func(d *Driver) {
		d.togglePause()
	},
	fyne.KeyS: func(d *Driver) {
		d.screenshot()
	},
	fyne.KeyC: func(d *Driver) {
		if err := utils.CopyImage(d.img); err != nil {
			d.logger().Errorf("failed to copy frame: %v", err)
		}
	},
}

type fyneWindow struct {
	fyne.Window
	view   View
	events chan event.Event
}

type Driver struct {
	app fyne.App
	emu display.Emulator

	// the concrete board, when available. The inspection views and
	// the layer keys need more than the command interface.
	board *board.Board

	windows    []*fyneWindow
	mainWindow fyne.Window
	raster     *canvas.Raster
	img        *image.RGBA
	mainMenu   *fyne.MainMenu

	logView *views.Log
	scale   float64
}

func (d *Driver) Initialize(emu display.Emulator) {
	d.emu = emu
	if b, ok := emu.(*board.Board); ok {
		d.board = b
		// tee board logging into the log view
		b.Logger = log.Tee(b.Logger, d.logView)
	}
}

func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event) error {
	a := app.New()
	d.app = a

	// set the default theme
	a.Settings().SetTheme(themes.Default{})

	w := a.NewWindow("skyfox")
	d.mainWindow = w
	w.SetMaster()
	w.Resize(fyne.NewSize(float32(board.VisibleWidth*d.scale), float32(board.VisibleHeight*d.scale)))
	w.SetPadded(false)

	// create the image to draw to
	d.img = image.NewRGBA(image.Rect(0, 0, board.VisibleWidth, board.VisibleHeight))

	// create the canvas
	d.raster = canvas.NewRasterFromImage(d.img)
	d.raster.ScaleMode = canvas.ImageScalePixels
	d.raster.SetMinSize(fyne.NewSize(board.VisibleWidth, board.VisibleHeight))

	// set the content of the window and show it
	w.SetContent(d.raster)
	w.Show()

	// frame pump
	go func() {
		for f := range fb {
			for i := 0; i < board.VisibleWidth*board.VisibleHeight; i++ {
				d.img.Pix[i*4] = f[i*3]
				d.img.Pix[i*4+1] = f[i*3+1]
				d.img.Pix[i*4+2] = f[i*3+2]
				d.img.Pix[i*4+3] = 255
			}

			d.raster.Refresh()
		}
	}()

	// event dispatcher
	go func() {
		for e := range events {
			// is this event for the main window? (e.g. title)
			if e.Type == event.Title {
				d.mainWindow.SetTitle(e.Data.(string))
				continue
			}

			// send the event to all view windows
			for _, win := range d.windows {
				select {
				case win.events <- e:
				default:
				}
			}
		}
	}()

	// handle input
	if desk, ok := w.Canvas().(desktop.Canvas); ok {
		desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
			if h, ok := keyHandlers[e.Name]; ok {
				h(d)
			}
		})
	}

	// main menu listener (for escape key)
	w.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		if e.Name == fyne.KeyEscape {
			d.toggleMainMenu()
		}
	})

	// run the application
	a.Run()

	// shut the board down on exit
	d.emu.SendCommand(display.Close)

	return nil
}

func (d *Driver) Stop() error {
	if d.app != nil {
		d.app.Quit()
	}
	return nil
}

// NewWindow creates a new window with the given name and provided
// view.
func (d *Driver) NewWindow(name string, view View) *fyneWindow {
	w := d.app.NewWindow(name)
	b := &fyneWindow{
		Window: w,
		view:   view,
		events: make(chan event.Event, 60),
	}
	d.windows = append(d.windows, b)
	w.SetOnClosed(func() {
		// stop the view's event goroutine
		select {
		case b.events <- event.Event{Type: event.Quit}:
		default:
		}
		// remove the window from the list of windows
		for i, win := range d.windows {
			if win == b {
				d.windows = append(d.windows[:i], d.windows[i+1:]...)
			}
		}
	})
	return b
}

func (d *Driver) openWindowIfNotOpen(view View) {
	// iterate over all windows and see if the view is already open
	for _, w := range d.windows {
		if w.view.Title() == view.Title() {
			w.RequestFocus()
			return
		}
	}

	win := d.NewWindow(view.Title(), view)
	win.Show()

	if err := view.Run(win, win.events); err != nil {
		d.logger().Errorf("failed to run view %s: %v", view.Title(), err)
	}
}

func (d *Driver) toggleMainMenu() {
	if d.mainMenu != nil {
		d.mainMenu = nil
		d.mainWindow.SetMainMenu(nil)

		// resume the board
		d.emu.SendCommand(display.Resume)
		return
	}

	// file menu
	menuItemSaveState := fyne.NewMenuItem("Save State", func() {
		resp := d.emu.SendCommand(emulator.CommandPacket{Command: emulator.CommandSaveState})
		if resp.Error != nil {
			d.logger().Errorf("failed to save state: %v", resp.Error)
			return
		}

		filename, err := utils.AskForSaveFile("Save State", "")
		if err != nil {
			return // user cancelled
		}
		if err := os.WriteFile(filename, resp.Data, 0o644); err != nil {
			d.logger().Errorf("failed to save state: %v", err)
			return
		}
		d.logger().Infof("saved state to %s", filename)
	})
	menuItemLoadState := fyne.NewMenuItem("Load State", func() {
		filename, err := utils.AskForFile("Load State", "")
		if err != nil {
			return // user cancelled
		}
		data, err := os.ReadFile(filename)
		if err != nil {
			d.logger().Errorf("failed to load state: %v", err)
			return
		}

		resp := d.emu.SendCommand(emulator.CommandPacket{Command: emulator.CommandLoadState, Data: data})
		if resp.Error != nil {
			d.logger().Errorf("failed to load state: %v", resp.Error)
			return
		}
		d.logger().Infof("loaded state from %s", filename)
	})
	fileMenu := fyne.NewMenu("File",
		menuItemSaveState,
		menuItemLoadState,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { d.app.Quit() }),
	)

	// board menu
	boardMenu := fyne.NewMenu("Board",
		fyne.NewMenuItem("Resume", func() { d.toggleMainMenu() }),
		fyne.NewMenuItem("Reset", func() { d.emu.SendCommand(display.Reset) }),
	)

	// video menu
	videoLayers := fyne.NewMenuItem("Layers", nil)
	videoLayers.ChildMenu = fyne.NewMenu("",
		NewCustomizedMenuItem("Sprites", func() {
			d.board.Video.Debug.SpritesDisabled = !d.board.Video.Debug.SpritesDisabled
		}, Checked(d.board != nil && !d.board.Video.Debug.SpritesDisabled, func() {}), Gated(d.board == nil)),
		NewCustomizedMenuItem("Stars", func() {
			d.board.Video.Debug.StarsDisabled = !d.board.Video.Debug.StarsDisabled
		}, Checked(d.board != nil && !d.board.Video.Debug.StarsDisabled, func() {}), Gated(d.board == nil)),
	)
	videoMenu := fyne.NewMenu("Video",
		videoLayers,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Take Screenshot", func() { d.screenshot() }),
		fyne.NewMenuItem("Copy Frame", func() {
			if err := utils.CopyImage(d.img); err != nil {
				d.logger().Errorf("failed to copy frame: %v", err)
			}
		}),
	)

	// debug menu
	debugViews := fyne.NewMenuItem("Views", nil)
	debugViews.ChildMenu = fyne.NewMenu("")
	for _, view := range []View{
		&views.Video{Board: d.board},
		&views.Palette{Board: d.board},
		&views.Sprites{Board: d.board},
		&views.Tiles{Board: d.board},
		&views.Pattern{Board: d.board},
	} {
		newView := view
		debugViews.ChildMenu.Items = append(debugViews.ChildMenu.Items,
			NewCustomizedMenuItem(newView.Title(), func() { d.openWindowIfNotOpen(newView) }, Gated(d.board == nil)))
	}
	debugMenu := fyne.NewMenu("Debug",
		debugViews,
		fyne.NewMenuItem("Performance", func() { d.openWindowIfNotOpen(&views.Performance{}) }),
		fyne.NewMenuItem("Log", func() { d.openWindowIfNotOpen(d.logView) }),
	)

	mainMenu := fyne.NewMainMenu(
		fileMenu,
		boardMenu,
		videoMenu,
		debugMenu,
	)
	mainMenu.Refresh()
	d.mainWindow.SetMainMenu(mainMenu)
	d.mainMenu = mainMenu

	// pause the board while the menu is open
	d.emu.SendCommand(display.Pause)
}

func (d *Driver) togglePause() {
	if d.emu.Status().IsPaused() {
		d.emu.SendCommand(display.Resume)
	} else {
		d.emu.SendCommand(display.Pause)
	}
}

func (d *Driver) screenshot() {
	img := utils.ScaleImage(d.img, 2)
	if err := utils.SaveImage(img); err != nil {
		d.logger().Errorf("failed to save screenshot: %v", err)
	}
}

func (d *Driver) logger() log.Logger {
	if d.board != nil && d.board.Logger != nil {
		return d.board.Logger
	}
	return log.New()
}
