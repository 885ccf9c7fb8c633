package web

import (
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/retroboard/skyfox/pkg/display"
	"github.com/retroboard/skyfox/pkg/utils"
)

type Client struct {
	mu       sync.Mutex
	hub      *hub
	conn     *websocket.Conn
	Send     chan []byte
	ID       uint8
	Metadata struct {
		RemoteAddr string
		UserAgent  string
	}
	avgLatency  uint16
	connectedAt time.Time
}

func (c *Client) ReadPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
		c.avgLatency = 0
	}()

	// read messages from client
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case 10: // hub settings
			if len(message) < 3 {
				continue
			}
			c.hub.mu.Lock()

			switch message[1] {
			case Compression:
				c.hub.compression = message[2] == 1
			case CompressionLevel:
				c.hub.compressionLevel = utils.Clamp(0, int(message[2]), 11)
			case FramePatching:
				c.hub.framePatching = message[2] == 1
			case FrameSkipping:
				c.hub.frameSkipping = message[2] == 1
			case FramePatchingRatio:
				c.hub.framePatchRatio = utils.Clamp(0, int(message[2]), 100)
			}

			c.hub.sendAllButClient(c, append([]byte{ClientInfo, message[1]}, message[2:]...))
			c.hub.mu.Unlock()
		case 9: // video layer control
			if len(message) < 3 || c.hub.board == nil {
				continue
			}

			switch message[1] {
			case 0: // sprites
				c.hub.board.Video.Debug.SpritesDisabled = message[2] == 0
				c.hub.sendAllButClient(c, []byte{FeedInfo, SpritesEnabled, message[2]})
			case 1: // stars
				c.hub.board.Video.Debug.StarsDisabled = message[2] == 0
				c.hub.sendAllButClient(c, []byte{FeedInfo, StarsEnabled, message[2]})
			}
		case KeepAlive:
		case Closing: // websocket client request close
			c.hub.sendAllButClient(c, []byte{ClientClosing, c.ID})
			c.hub.unregister <- c
			return
		default:
			// a single byte toggles the feed between paused and running
			if len(message) == 1 {
				if message[0] == 0 {
					c.hub.emu.SendCommand(display.Pause)
					c.hub.sendAllButClient(c, []byte{FeedInfo, PausePlay, 0})
				} else {
					c.hub.emu.SendCommand(display.Resume)
					c.hub.sendAllButClient(c, []byte{FeedInfo, PausePlay, 1})
				}
			}
		}
	}
}

func (c *Client) WritePump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		c.hub.unregister <- c
		c.conn.WriteMessage(websocket.CloseMessage, []byte{})
	}()

	for message := range c.Send {
		// try to write message to client
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		info, err := tcpInfo(c.conn.UnderlyingConn().(*net.TCPConn))
		if err != nil {
			continue
		}
		c.mu.Lock()
		c.avgLatency = (c.avgLatency*9 + uint16(info.Rtt/1000)) / 10
		c.mu.Unlock()
	}
}
