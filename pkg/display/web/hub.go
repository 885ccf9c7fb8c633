package web

import (
	"encoding/binary"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sys/unix"

	"github.com/retroboard/skyfox/internal/board"
	"github.com/retroboard/skyfox/internal/types"
	"github.com/retroboard/skyfox/pkg/display"
	"github.com/retroboard/skyfox/pkg/log"
)

type hub struct {
	clients map[*Client]bool
	feed    *feed

	broadcast            chan []byte
	register, unregister chan *Client

	emu    display.Emulator
	board  *board.Board
	logger log.Logger

	server *http.Server

	compression      bool
	compressionLevel int
	framePatching    bool
	framePatchRatio  int
	frameSkipping    bool
	currentID        uint8

	mu sync.Mutex
}

func (w *hub) run(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(wr http.ResponseWriter, r *http.Request) {
		wr.Header().Set("Access-Control-Allow-Origin", "*")

		// upgrade the connection to a websocket connection
		conn, err := upgrader.Upgrade(wr, r, nil)
		if err != nil {
			w.logger.Errorf("websocket upgrade: %v", err)
			return
		}

		// create new client
		c := w.newClient(conn, r)

		// spawn read/write pumps
		go c.ReadPump()
		go c.WritePump()

		// send initial data information
		c.Send <- []byte{ClientInfo, ClientStatus, w.info(), uint8(w.compressionLevel), uint8(w.framePatchRatio)}

		// bring the new client up to the current frame and caches
		w.feed.clientSync <- c

		// synchronize connected clients to connecting client
		var data []byte
		for cl := range w.clients {
			if c == cl {
				continue // skip self
			}

			data = append(data, cl.Metadata.RemoteAddr...)
			data = append(data, 0)
			data = append(data, cl.Metadata.UserAgent...)
			data = append(data, 0)
			data = append(data, cl.ID)
			data = append(data, byte('\n'))
		}

		if len(data) > 0 {
			// remove last newline to avoid issues with JS
			data = data[:len(data)-1]
		}

		c.Send <- append([]byte{ClientListSync}, data...)
	})

	w.server = &http.Server{Addr: addr, Handler: mux}

	// setup goroutines

	// web server
	go func() {
		if err := w.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			w.logger.Fatal(err.Error())
		}
	}()

	// periodic info updates
	go func() {
		t := time.NewTicker(time.Second * 1)
		for range t.C {
			// build information
			var data []byte
			for c := range w.clients {
				latencyBuf := make([]byte, 2)
				binary.LittleEndian.PutUint16(latencyBuf, c.avgLatency)
				data = append(data, c.ID)
				data = append(data, latencyBuf...)
			}

			// broadcast information
			w.broadcast <- append([]byte{ServerInfo}, data...)
		}
	}()

	// handle broadcasting
	for {
		select {
		case c := <-w.register:
			w.clients[c] = true
		case c := <-w.unregister:
			// is this client still registered
			if _, ok := w.clients[c]; ok {
				id := c.ID
				delete(w.clients, c)

				// notify connected clients that this client has disconnected
				for c := range w.clients {
					select {
					case c.Send <- []byte{ClientClosing, id}:
					default:
					}
				}
			}
		case msg := <-w.broadcast:
			for c := range w.clients {
				select {
				case c.Send <- msg:
				default:
					close(c.Send)
					delete(w.clients, c)
				}
			}
		}
	}
}

// info returns a byte of information containing the various
// hub settings. The byte is constructed as follows:
//
//	Bit 0: Feed running
//	Bit 1: Feed paused
//	Bit 2: Compression enabled
//	Bit 3: Frame patching enabled
//	Bit 4: Frame skipping enabled
//	Bit 5: Sprite layer hidden
//	Bit 6: Star layer hidden
func (w *hub) info() byte {
	info := uint8(0)
	if w.emu.Status().IsRunning() {
		info |= types.Bit0
	}
	if w.emu.Status().IsPaused() {
		info |= types.Bit1
	}
	if w.compression {
		info |= types.Bit2
	}
	if w.framePatching {
		info |= types.Bit3
	}
	if w.frameSkipping {
		info |= types.Bit4
	}
	if w.board != nil && w.board.Video.Debug.SpritesDisabled {
		info |= types.Bit5
	}
	if w.board != nil && w.board.Video.Debug.StarsDisabled {
		info |= types.Bit6
	}

	return info
}

// newClient creates a new client and registers it to the hub
func (w *hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.currentID++

	c := &Client{
		hub:  w,
		conn: conn,
		Send: make(chan []byte, 256),
		ID:   w.currentID,
		Metadata: struct {
			RemoteAddr string
			UserAgent  string
		}{RemoteAddr: r.RemoteAddr, UserAgent: r.Header.Get("User-Agent")},
		connectedAt: time.Now(),
	}
	w.register <- c
	return c
}

// sendAllButClient sends a message to all connected clients except
// the one specified. Used for events such as setting changes, where
// the client is the one that initiated the event, so is already
// aware of the new value.
func (w *hub) sendAllButClient(client *Client, message []byte) {
	for c := range w.clients {
		if c == client {
			continue
		}
		c.Send <- message
	}
}

func (w *hub) sendAll(message []byte) {
	w.broadcast <- message
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func tcpInfo(conn *net.TCPConn) (*unix.TCPInfo, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return nil, err
	}

	var info *unix.TCPInfo
	ctrlErr := raw.Control(func(fd uintptr) {
		info, err = unix.GetsockoptTCPInfo(int(fd), unix.IPPROTO_TCP, unix.TCP_INFO)
	})
	switch {
	case ctrlErr != nil:
		return nil, ctrlErr
	case err != nil:
		return nil, err
	}

	return info, nil
}
