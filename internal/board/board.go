// Package board wires the video core to memory, clocking and control.
// It stands in for the machine around the video hardware: it owns the
// RAM windows and ROMs, latches the control register once per frame
// and paces frame delivery to a display driver.
package board

import (
	"fmt"
	"time"

	"github.com/retroboard/skyfox/internal/gfx"
	"github.com/retroboard/skyfox/internal/types"
	"github.com/retroboard/skyfox/internal/video"
	"github.com/retroboard/skyfox/pkg/display/event"
	"github.com/retroboard/skyfox/pkg/emulator"
	"github.com/retroboard/skyfox/pkg/log"
)

const (
	// ScreenWidth and ScreenHeight span the full raster, the surface
	// the star plotter wraps on and the flip mirror reflects in.
	ScreenWidth  = 512
	ScreenHeight = 256

	// The visible viewport inside the full raster.
	VisibleX      = 0x60
	VisibleY      = 0x10
	VisibleWidth  = 384
	VisibleHeight = 224

	// ClockHz is the pixel clock; one frame is one full sweep of the
	// 512x256 raster.
	ClockHz = 8_000_000

	// FrameTime is the nominal duration of one frame.
	FrameTime = time.Second * ScreenWidth * ScreenHeight / ClockHz
)

// FrameRate is the nominal refresh rate, a little above 61 Hz.
const FrameRate = float64(ClockHz) / (ScreenWidth * ScreenHeight)

// frameTimeWindow is how many per-frame render durations are kept for
// the performance telemetry event.
const frameTimeWindow = 100

// Board is the video board with its memories and frame clock.
type Board struct {
	Video *video.Video

	control    video.Control
	spriteRAM  []byte
	starRAM    []byte
	patternROM []byte
	tiles      *gfx.TileSet

	palette video.Palette
	bitmap  *gfx.Bitmap
	clip    gfx.Rect

	Logger log.Logger

	hook       func(*Board)
	paused     bool
	stopped    bool
	speed      float64
	frames     uint64
	frameTimes []time.Duration
}

// New builds a board around the two sprite ROMs. tileROM holds the
// packed 8bpp sprite cells, patternROM the four star pattern banks.
func New(tileROM, patternROM []byte, opts ...Opt) (*Board, error) {
	if len(patternROM) < video.PatternROMSize {
		return nil, fmt.Errorf("pattern rom is %d bytes, want at least %d", len(patternROM), video.PatternROMSize)
	}
	tiles, err := gfx.NewTileSet(tileROM)
	if err != nil {
		return nil, fmt.Errorf("sprite rom: %w", err)
	}

	b := &Board{
		spriteRAM:  make([]byte, video.SpriteRAMSize),
		starRAM:    make([]byte, video.StarRAMSize),
		patternROM: patternROM,
		tiles:      tiles,
		palette:    video.GreyPalette(),
		bitmap:     gfx.NewBitmap(ScreenWidth, ScreenHeight),
		clip:       gfx.NewRect(VisibleX, VisibleY, VisibleX+VisibleWidth, VisibleY+VisibleHeight),
		Logger:     log.New(),
		speed:      1,
		frameTimes: make([]time.Duration, 0, frameTimeWindow),
	}
	b.Video = video.New(b.spriteRAM, b.starRAM, patternROM, tiles)

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// WriteControl latches a new control value. A frame being rendered
// keeps the value it sampled when it started.
func (b *Board) WriteControl(v uint8) {
	b.control = video.Control(v)
}

// Control returns the current control latch.
func (b *Board) Control() video.Control {
	return b.control
}

// WriteSpriteRAM writes one byte of the sprite table window. Offsets
// wrap like the hardware address decode.
func (b *Board) WriteSpriteRAM(offset int, v uint8) {
	b.spriteRAM[offset&(video.SpriteRAMSize-1)] = v
}

// WriteStarRAM writes one byte of the star control window.
func (b *Board) WriteStarRAM(offset int, v uint8) {
	b.starRAM[offset&(video.StarRAMSize-1)] = v
}

// SpriteRAM exposes the sprite table window for inspection UIs. The
// returned slice is live; treat it as read only.
func (b *Board) SpriteRAM() []byte { return b.spriteRAM }

// StarRAM exposes the star control window for inspection UIs.
func (b *Board) StarRAM() []byte { return b.starRAM }

// PatternROM exposes the star pattern ROM.
func (b *Board) PatternROM() []byte { return b.patternROM }

// Tiles exposes the decoded sprite cells.
func (b *Board) Tiles() *gfx.TileSet { return b.tiles }

// Palette returns the presentation palette.
func (b *Board) Palette() video.Palette { return b.palette }

// Sprite decodes entry i of the sprite table.
func (b *Board) Sprite(i int) video.Sprite {
	return video.SpriteAt(b.spriteRAM, i)
}

// Bitmap returns the pen surface of the most recent frame.
func (b *Board) Bitmap() *gfx.Bitmap { return b.bitmap }

// FrameCount returns how many frames have been rendered.
func (b *Board) FrameCount() uint64 { return b.frames }

// RenderFrame latches the control register and renders one frame into
// the board's pen surface. The surface is reused between frames.
func (b *Board) RenderFrame() *gfx.Bitmap {
	ctl := b.control
	b.Video.RenderFrame(ctl, b.bitmap, b.clip)
	b.frames++
	return b.bitmap
}

// Frame renders one frame and returns the visible area as packed
// RGB24, row-major.
func (b *Board) Frame() []byte {
	bm := b.RenderFrame()
	buf := make([]byte, VisibleWidth*VisibleHeight*3)
	i := 0
	for y := VisibleY; y < VisibleY+VisibleHeight; y++ {
		for x := VisibleX; x < VisibleX+VisibleWidth; x++ {
			rgb := b.palette.RGB(bm.Pix(y, x))
			buf[i] = rgb[0]
			buf[i+1] = rgb[1]
			buf[i+2] = rgb[2]
			i += 3
		}
	}
	return buf
}

// Start runs the frame loop until the board is closed: once per
// FrameTime the hook mutates the memories, a frame is rendered and
// sent to fb. Telemetry events go to events once per second.
func (b *Board) Start(fb chan<- []byte, events chan<- event.Event) {
	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	rendered := 0
	lastSecond := time.Now()

	for range ticker.C {
		if b.stopped {
			close(fb)
			return
		}
		if b.paused {
			continue
		}

		if b.hook != nil {
			b.hook(b)
		}

		start := time.Now()
		frame := b.Frame()
		b.recordFrameTime(time.Since(start))

		fb <- frame
		rendered++

		if time.Since(lastSecond) >= time.Second {
			b.speed = float64(rendered) / (FrameRate * time.Since(lastSecond).Seconds())
			events <- event.Event{Type: event.FrameTime, Data: b.FrameTimes()}
			events <- event.Event{Type: event.Title, Data: fmt.Sprintf("skyfox | %d fps", rendered)}

			rendered = 0
			lastSecond = time.Now()
		}
	}
}

func (b *Board) recordFrameTime(d time.Duration) {
	if len(b.frameTimes) == frameTimeWindow {
		copy(b.frameTimes, b.frameTimes[1:])
		b.frameTimes = b.frameTimes[:frameTimeWindow-1]
	}
	b.frameTimes = append(b.frameTimes, d)
}

// FrameTimes returns a copy of the recent per-frame render durations.
func (b *Board) FrameTimes() []time.Duration {
	out := make([]time.Duration, len(b.frameTimes))
	copy(out, b.frameTimes)
	return out
}

// SendCommand controls the frame loop. It implements the
// display.Emulator contract.
func (b *Board) SendCommand(command emulator.CommandPacket) emulator.ResponsePacket {
	resp := emulator.ResponsePacket{Command: command.Command}
	switch command.Command {
	case emulator.CommandPause:
		b.paused = true
	case emulator.CommandResume:
		b.paused = false
	case emulator.CommandClose:
		b.stopped = true
	case emulator.CommandReset:
		b.Reset()
	case emulator.CommandSaveState:
		resp.Data = b.SaveState()
	case emulator.CommandLoadState:
		s := types.StateFromBytes(command.Data)
		b.Load(s)
	default:
		resp.Error = fmt.Errorf("unknown command %d", command.Command)
	}
	return resp
}

// Speed returns the achieved to nominal frame rate ratio.
func (b *Board) Speed() float64 {
	return b.speed
}

// Status returns the run state of the frame loop.
func (b *Board) Status() emulator.Status {
	switch {
	case b.stopped:
		return emulator.Stopped
	case b.paused:
		return emulator.Paused
	default:
		return emulator.Running
	}
}

// Reset clears the RAM windows, the control latch and the frame
// counter. The ROMs are untouched.
func (b *Board) Reset() {
	for i := range b.spriteRAM {
		b.spriteRAM[i] = 0
	}
	for i := range b.starRAM {
		b.starRAM[i] = 0
	}
	b.control = 0
	b.frames = 0
}
