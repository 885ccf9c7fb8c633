//go:build !test

// Package glfw implements a barebones display driver on GLFW and the
// OpenGL API: one window, one texture blit per frame.
package glfw

import (
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/pkg/display"
	"github.com/retroboard/skyfox/pkg/display/event"
)

const (
	aspectRatio = float32(board.VisibleWidth) / float32(board.VisibleHeight)
)

func init() {
	// GLFW: this is needed to arrange for main to run on main thread
	runtime.LockOSThread()

	driver := &glfwDriver{}
	display.Install("glfw", driver, []display.DriverOption{
		{
			Name:        "fullscreen",
			Default:     false,
			Value:       &driver.fullscreen,
			Type:        "bool",
			Description: "Run in fullscreen mode",
		},
		{
			Name:        "scale",
			Default:     2.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
		{
			Name:        "maintain-aspect-ratio",
			Default:     false,
			Value:       &driver.maintainAspectRatio,
			Type:        "bool",
			Description: "Force the window to maintain the correct aspect ratio",
		},
	})
}

var (
	mon *glfw.Monitor
)

// glfwDriver implements a barebones display driver using GLFW
// and the OpenGL API.
type glfwDriver struct {
	fullscreen          bool
	scale               float64
	maintainAspectRatio bool

	emu   display.Emulator
	board *board.Board

	windowSettings struct {
		width      int
		height     int
		xPos, yPos int
	}
}

func (g *glfwDriver) Initialize(e display.Emulator) {
	g.emu = e
	// the layer toggle keys need the concrete board
	if b, ok := e.(*board.Board); ok {
		g.board = b
	}
}

// Start starts the display driver.
func (g *glfwDriver) Start(frames <-chan []byte, evts <-chan event.Event) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	mon = glfw.GetPrimaryMonitor()

	// create window
	window, err := glfw.CreateWindow(int(board.VisibleWidth*g.scale), int(board.VisibleHeight*g.scale), "skyfox", nil, nil)
	if err != nil {
		return err
	}

	if g.maintainAspectRatio {
		window.SetAspectRatio(board.VisibleWidth, board.VisibleHeight)
	}
	// fullscreen
	if g.fullscreen {
		bestMode := getBestMode()
		window.SetMonitor(mon, 0, 0, bestMode.Width, bestMode.Height, bestMode.RefreshRate)
	}

	window.MakeContextCurrent()

	// initialize OpenGL, needs the current context
	if err := gl.Init(); err != nil {
		return err
	}

	// initialize window settings
	g.windowSettings.width, g.windowSettings.height = window.GetSize()
	g.windowSettings.xPos, g.windowSettings.yPos = window.GetPos()

	var texture uint32
	{
		gl.GenTextures(1, &texture)

		gl.BindTexture(gl.TEXTURE_2D, texture)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)

		gl.BindImageTexture(0, texture, 0, false, 0, gl.WRITE_ONLY, gl.RGB8)
	}

	// setup event handling
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}

		switch key {
		case glfw.Key1:
			if g.board != nil {
				g.board.Video.Debug.SpritesDisabled = !g.board.Video.Debug.SpritesDisabled
			}
		case glfw.Key2:
			if g.board != nil {
				g.board.Video.Debug.StarsDisabled = !g.board.Video.Debug.StarsDisabled
			}
		case glfw.KeyR:
			g.emu.SendCommand(display.Reset)
		case glfw.KeyF11:
			// toggle fullscreen
			if g.fullscreen {
				window.SetMonitor(nil, g.windowSettings.xPos, g.windowSettings.yPos, g.windowSettings.width, g.windowSettings.height, 60)
			} else {
				// store the current window settings
				g.windowSettings.width, g.windowSettings.height = window.GetSize()
				g.windowSettings.xPos, g.windowSettings.yPos = window.GetPos()

				bestMode := getBestMode()
				window.SetMonitor(mon, 0, 0, bestMode.Width, bestMode.Height, bestMode.RefreshRate)
			}

			g.fullscreen = !g.fullscreen
		case glfw.KeyEscape, glfw.KeyPause:
			if g.emu.Status().IsRunning() {
				g.emu.SendCommand(display.Pause)
			} else if g.emu.Status().IsPaused() {
				g.emu.SendCommand(display.Resume)
			}
		}
	})

	var fb uint32
	{
		gl.GenFramebuffers(1, &fb)
		gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)

		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb)
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	}

	// handle resizing
	targetWidth := int32(board.VisibleWidth * g.scale)
	targetHeight := int32(board.VisibleHeight * g.scale)
	var offsetX, offsetY int32
	window.SetSizeCallback(func(_ *glfw.Window, w, h int) {

		if float32(w)/float32(h) > aspectRatio {
			targetWidth = int32(float32(h) * aspectRatio)
			targetHeight = int32(h)
		} else {
			targetWidth = int32(w)
			targetHeight = int32(float32(w) / aspectRatio)
		}

		offsetX = (int32(w) - targetWidth) / 2
		offsetY = (int32(h) - targetHeight) / 2
	})

	pollTicker := time.NewTicker(time.Millisecond * 100) // to handle when paused
	// draw loop
	for {
		select {
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			glfw.PollEvents()
			if window.ShouldClose() {
				return nil
			}
			gl.Clear(gl.COLOR_BUFFER_BIT)

			gl.BindTexture(gl.TEXTURE_2D, texture)
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, board.VisibleWidth, board.VisibleHeight, 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(f))

			gl.BlitFramebuffer(0, 0, board.VisibleWidth, board.VisibleHeight, offsetX, offsetY+targetHeight, offsetX+targetWidth, offsetY, gl.COLOR_BUFFER_BIT, gl.NEAREST)

			window.SwapBuffers()
		case e := <-evts:
			switch e.Type {
			case event.Title:
				window.SetTitle(e.Data.(string))
			}
		case <-pollTicker.C:
			glfw.PollEvents()
			if window.ShouldClose() {
				return nil
			}
		}
	}

}

// Stop stops the display driver.
func (g *glfwDriver) Stop() error {
	glfw.Terminate()

	return nil
}

// getBestMode returns the best video mode for the current monitor
// by choosing the highest resolution that is the closest match to
// the native aspect ratio of the monitor. This should provide a
// reasonable default for most monitors.
func getBestMode() *glfw.VidMode {
	sizeX, sizeY := mon.GetPhysicalSize()
	monAspectRatio := float32(sizeX) / float32(sizeY)
	closestMatch := float32(0)

	var best *glfw.VidMode
	for _, vm := range mon.GetVideoModes() {
		// skip modes that aren't 60FPS
		if vm.RefreshRate != 60 {
			continue
		}

		// skip modes that have a worse aspect ratio match
		vmAspectRatio := float32(vm.Width) / float32(vm.Height)
		if monAspectRatio-vmAspectRatio > closestMatch {
			continue
		}

		closestMatch = vmAspectRatio - monAspectRatio
		best = vm
	}

	return best
}
