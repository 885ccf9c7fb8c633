// Package web implements a display driver that serves the frame
// stream to browser clients over websockets. Any connected client
// can pause the feed, toggle the video layers and tune the transport
// settings; brotli compression, dirty-rectangle patches and payload
// caches keep the stream small.
package web

import (
	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/pkg/display"
	"github.com/retroboard/skyfox/pkg/display/event"
	"github.com/retroboard/skyfox/pkg/log"
)

var driver = &Driver{}

func init() {
	display.Install("web", driver, []display.DriverOption{
		{Name: "addr", Default: ":8090", Value: &driver.addr, Description: "address to serve the web display on", Type: "string"},
	})
}

type Driver struct {
	hub  *hub
	addr string
}

func (d *Driver) Initialize(emu display.Emulator) {
	h := &hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client, 4),
		unregister: make(chan *Client, 4),

		emu:    emu,
		logger: log.New(),

		compression:      true,
		compressionLevel: 7,
		framePatching:    true,
		framePatchRatio:  50,
		frameSkipping:    true,
	}
	// layer toggles need the concrete board, not just the command
	// interface
	if b, ok := emu.(*board.Board); ok {
		h.board = b
	}
	h.feed = newFeed(h)
	d.hub = h
}

func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event) error {
	go d.hub.run(d.addr)

	// drain board events so speed updates never block the board loop
	go func() {
		for range events {
		}
	}()

	d.hub.feed.run(fb)
	return nil
}

func (d *Driver) Stop() error {
	if d.hub != nil && d.hub.server != nil {
		return d.hub.server.Close()
	}
	return nil
}
