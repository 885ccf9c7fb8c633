package main

import (
	"flag"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/internal/demo"
	"github.com/retroboard/skyfox/internal/video"
	"github.com/retroboard/skyfox/pkg/display"
	"github.com/retroboard/skyfox/pkg/display/event"
	_ "github.com/retroboard/skyfox/pkg/display/fyne"
	_ "github.com/retroboard/skyfox/pkg/display/glfw"
	_ "github.com/retroboard/skyfox/pkg/display/sdl"
	_ "github.com/retroboard/skyfox/pkg/display/web"
	"github.com/retroboard/skyfox/pkg/log"
	"github.com/retroboard/skyfox/pkg/utils"

	"net/http"
	_ "net/http/pprof"
)

var (
	_ display.Emulator = &board.Board{}
)

func main() {
	// start pprof
	go func() {
		err := http.ListenAndServe("localhost:6060", nil)
		if err != nil {
			return
		}
	}()

	var logger = log.New()

	if len(display.InstalledDrivers) == 0 {
		logger.Fatal("No display drivers installed. Please compile with at least one display driver")
	}

	spriteROM := flag.String("sprites", "", "The sprite rom file to load")
	patternROM := flag.String("stars", "", "The star pattern rom file to load")
	paletteFile := flag.String("palette", "", "The palette file to load, 3 bytes per pen")
	state := flag.String("state", "", "The state file to load")
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, sdl, glfw, fyne or web")
	runDemo := flag.Bool("demo", false, "Run the attract demo with generated roms")

	display.RegisterFlags()
	flag.Parse()

	var opts []board.Opt
	opts = append(opts, board.WithLogger(logger))

	var tiles, pattern []byte
	var err error
	switch {
	case *runDemo:
		tiles = demo.TileROM()
		pattern = demo.PatternROM()
		opts = append(opts, board.WithPalette(demo.Palette()), board.WithFrameHook(demo.Hook()))
	default:
		if *spriteROM == "" || *patternROM == "" {
			logger.Fatal("No roms given. Pass -sprites and -stars, or run with -demo")
		}
		if tiles, err = utils.LoadFile(*spriteROM); err != nil {
			logger.Fatal(err.Error())
		}
		if pattern, err = utils.LoadFile(*patternROM); err != nil {
			logger.Fatal(err.Error())
		}
	}

	if *paletteFile != "" {
		data, err := utils.LoadFile(*paletteFile)
		if err != nil {
			logger.Fatal(err.Error())
		}
		pal, err := video.PaletteFrom(data)
		if err != nil {
			logger.Fatal(err.Error())
		}
		opts = append(opts, board.WithPalette(pal))
	}

	if *state != "" {
		data, err := utils.LoadFile(*state)
		if err != nil {
			logger.Fatal(err.Error())
		}
		opts = append(opts, board.WithState(data))
	}

	b, err := board.New(tiles, pattern, opts...)
	if err != nil {
		logger.Fatal(err.Error())
	}

	driver := display.GetDriver(*displayDriver)

	// check to make sure the driver is valid
	if driver == nil {
		logger.Fatal("invalid display driver")
	}

	// attach board to driver
	driver.Initialize(b)

	// create framebuffer
	fb := make(chan []byte, 60)

	// create event channel
	events := make(chan event.Event, 60)

	// start board in a goroutine
	go b.Start(fb, events)

	if err := driver.Start(fb, events); err != nil {
		logger.Fatal(err.Error())
	}
}
