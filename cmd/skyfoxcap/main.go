// Command skyfoxcap renders frames headlessly and writes them out as
// PNG files. Useful for golden frame comparisons and for turning the
// demo animation into a film strip.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/internal/demo"
	"github.com/retroboard/skyfox/internal/video"
	"github.com/retroboard/skyfox/pkg/log"
	"github.com/retroboard/skyfox/pkg/utils"
)

func main() {
	logger := log.New()

	spriteROM := flag.String("sprites", "", "The sprite rom file to load")
	patternROM := flag.String("stars", "", "The star pattern rom file to load")
	paletteFile := flag.String("palette", "", "The palette file to load, 3 bytes per pen")
	state := flag.String("state", "", "The state file to load")
	runDemo := flag.Bool("demo", false, "Capture the attract demo instead of rom files")
	frames := flag.Int("frames", 1, "How many frames to capture")
	every := flag.Int("every", 1, "Capture every nth frame")
	skip := flag.Int("skip", 0, "Frames to run before the first capture")
	scale := flag.Int("scale", 1, "Integer scale factor for the output images")
	smooth := flag.Bool("smooth", false, "Scale with interpolation instead of nearest neighbour")
	out := flag.String("out", ".", "Directory to write the images to")
	flag.Parse()

	if *every < 1 {
		*every = 1
	}

	var opts []board.Opt
	opts = append(opts, board.WithLogger(log.NewNullLogger()))

	var hook func(*board.Board)
	var tiles, pattern []byte
	var err error
	switch {
	case *runDemo:
		tiles = demo.TileROM()
		pattern = demo.PatternROM()
		hook = demo.Hook()
		opts = append(opts, board.WithPalette(demo.Palette()))
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

	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Fatal(err.Error())
	}

	captured := 0
	total := *skip + *frames*(*every)
	for f := 0; f < total; f++ {
		if hook != nil {
			hook(b)
		}

		// only frames being written need the rgb pack
		if f < *skip || (f-*skip)%(*every) != 0 {
			b.RenderFrame()
			continue
		}

		img := utils.RGBToImage(b.Frame(), board.VisibleWidth, board.VisibleHeight)
		var scaled image.Image = img
		if *scale > 1 {
			if *smooth {
				scaled = utils.SmoothScaleImage(img, *scale)
			} else {
				scaled = utils.ScaleImage(img, *scale)
			}
		}

		name := filepath.Join(*out, fmt.Sprintf("frame-%05d.png", f))
		if err := utils.SaveImageTo(scaled, name); err != nil {
			logger.Fatal(err.Error())
		}
		captured++
	}

	logger.Infof("wrote %d frames to %s", captured, *out)
}
