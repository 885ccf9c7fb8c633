//go:build !test

// Package sdl implements a lean SDL2 display driver: a resizable
// window fed by a streaming RGB24 texture. It is the default driver
// when no other is requested.
package sdl

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/pkg/display"
	"github.com/retroboard/skyfox/pkg/display/event"
	"github.com/retroboard/skyfox/pkg/utils"
)

var driver = &Driver{}

func init() {
	display.Install("sdl", driver, []display.DriverOption{
		{Name: "scale", Default: 2.0, Value: &driver.scale, Description: "window scale factor", Type: "float"},
		{Name: "fullscreen", Default: false, Value: &driver.fullscreen, Description: "start in fullscreen", Type: "bool"},
	})
}

type Driver struct {
	emu display.Emulator

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	scale      float64
	fullscreen bool

	lastFrame []byte
}

func (d *Driver) Initialize(emu display.Emulator) {
	d.emu = emu
}

func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}

	w := int32(float64(board.VisibleWidth) * d.scale)
	h := int32(float64(board.VisibleHeight) * d.scale)
	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if d.fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	d.window, err = sdl.CreateWindow("skyfox", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, w, h, flags)
	if err != nil {
		return fmt.Errorf("sdl window: %w", err)
	}
	d.renderer, err = sdl.CreateRenderer(d.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("sdl renderer: %w", err)
	}
	if err := d.renderer.SetLogicalSize(board.VisibleWidth, board.VisibleHeight); err != nil {
		return fmt.Errorf("sdl logical size: %w", err)
	}
	d.texture, err = d.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGB24), sdl.TEXTUREACCESS_STREAMING, board.VisibleWidth, board.VisibleHeight)
	if err != nil {
		return fmt.Errorf("sdl texture: %w", err)
	}

	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch e := ev.(type) {
			case *sdl.QuitEvent:
				d.emu.SendCommand(display.Close)
				return nil
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN {
					d.handleKey(e.Keysym.Sym)
				}
			}
		}

		select {
		case frame, ok := <-fb:
			if !ok {
				return nil
			}
			d.lastFrame = frame
			if err := d.texture.Update(nil, unsafe.Pointer(&frame[0]), board.VisibleWidth*3); err != nil {
				return fmt.Errorf("sdl texture update: %w", err)
			}
			if err := d.renderer.Clear(); err != nil {
				return err
			}
			if err := d.renderer.Copy(d.texture, nil, nil); err != nil {
				return err
			}
			d.renderer.Present()
		case e := <-events:
			switch e.Type {
			case event.Quit:
				return nil
			case event.Title:
				d.window.SetTitle(e.Data.(string))
			}
		case <-time.After(5 * time.Millisecond):
			// keep polling sdl events while the board is paused
		}
	}
}

func (d *Driver) handleKey(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE:
		d.emu.SendCommand(display.Close)
	case sdl.K_p:
		if d.emu.Status().IsPaused() {
			d.emu.SendCommand(display.Resume)
		} else {
			d.emu.SendCommand(display.Pause)
		}
	case sdl.K_r:
		d.emu.SendCommand(display.Reset)
	case sdl.K_s:
		if d.lastFrame == nil {
			return
		}
		img := utils.RGBToImage(d.lastFrame, board.VisibleWidth, board.VisibleHeight)
		if err := utils.SaveImage(utils.ScaleImage(img, 2)); err != nil {
			d.window.SetTitle(fmt.Sprintf("skyfox | screenshot failed: %v", err))
		}
	case sdl.K_f:
		d.fullscreen = !d.fullscreen
		if d.fullscreen {
			d.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
		} else {
			d.window.SetFullscreen(0)
		}
	}
}

func (d *Driver) Stop() error {
	if d.texture != nil {
		d.texture.Destroy()
	}
	if d.renderer != nil {
		d.renderer.Destroy()
	}
	if d.window != nil {
		d.window.Destroy()
	}
	sdl.Quit()
	return nil
}
