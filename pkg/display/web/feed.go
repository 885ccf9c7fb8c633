package web

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"

	"github.com/retroboard/skyfox/internal/board"
)

const visiblePixels = board.VisibleWidth * board.VisibleHeight

// feed turns the board's frame stream into websocket messages. Dirty
// pixel tracking decides between full frames and patches, repeated
// payloads are answered from the caches, and unchanged frames are
// rolled up into skip updates.
type feed struct {
	hub *hub

	clientSync chan *Client

	patchCache, frameCache *cache
	currentFrame           []byte
}

func newFeed(h *hub) *feed {
	return &feed{
		hub:          h,
		clientSync:   make(chan *Client, 4),
		patchCache:   newCache(512),
		frameCache:   newCache(128),
		currentFrame: make([]byte, visiblePixels*4),
	}
}

func (f *feed) run(fb <-chan []byte) {
	var dirtied = false
	var dirtiedPixelCount, framesSkipped = 0, 0
	dirtiedPixels := make([]byte, visiblePixels*4)
	emptyDirtiedPixels := make([]byte, visiblePixels*4)

	var frameSkipBuf = make([]byte, 4)
	var cacheBuf = make([]byte, 2)
	var e = Frame
	var buffer, output []byte

	for {
		select {
		case frame, ok := <-fb:
			if !ok {
				return
			}

			// process incoming framebuffer
			for i := 0; i < visiblePixels; i++ {
				// track dirty pixel count to determine appropriate update (patch vs full frame)
				r, g, b := frame[i*3], frame[i*3+1], frame[i*3+2]
				if f.currentFrame[i*4] != r || f.currentFrame[i*4+1] != g || f.currentFrame[i*4+2] != b {
					dirtied = true

					dirtiedPixels[i*4] = r
					dirtiedPixels[i*4+1] = g
					dirtiedPixels[i*4+2] = b
					dirtiedPixels[i*4+3] = 255
					dirtiedPixelCount++
				}

				f.currentFrame[i*4] = r
				f.currentFrame[i*4+1] = g
				f.currentFrame[i*4+2] = b
				f.currentFrame[i*4+3] = 255
			}

			// was the framebuffer dirtied (or has the hub disabled frame skipping)
			if dirtied || !f.hub.frameSkipping {
				// handle frame skipping
				if framesSkipped > 0 && f.hub.frameSkipping {
					binary.LittleEndian.PutUint32(frameSkipBuf, uint32(framesSkipped))

					// send skip update to all clients
					f.hub.sendAll(append([]byte{FrameSkip}, bytes.TrimRight(frameSkipBuf, "\x00")...))
					framesSkipped = 0
				}

				// determine if we should patch the framebuffer
				if f.hub.framePatching && dirtiedPixelCount < f.hub.framePatchRatio*(visiblePixels/100) {
					buffer = dirtiedPixels
					e = FramePatch
				} else {
					buffer = f.currentFrame
				}

				// handle compression (if enabled)
				if f.hub.compression {
					var err error
					output, err = cbrotli.Encode(buffer, cbrotli.WriterOptions{
						Quality: f.hub.compressionLevel,
					})
					if err != nil {
						f.hub.logger.Errorf("frame compression: %v", err)
						continue
					}
				} else {
					output = buffer
				}

				// calculate the hash of the data
				hash := xxhash.Sum64(output)

				// is this a patch?
				if e == FramePatch {
					f.patchCache.Lock()
					// does this patch exist in the cache?
					if idx := f.patchCache.index(hash); idx != -1 { // yes
						binary.LittleEndian.PutUint16(cacheBuf, uint16(idx))
						f.hub.sendAll(append([]byte{PatchCache}, bytes.TrimRight(cacheBuf, "\x00")...))
					} else { // no
						f.patchCache.add(hash, output)
						binary.LittleEndian.PutUint16(cacheBuf, uint16(f.patchCache.index(hash)))
						f.hub.sendAll(append([]byte{FramePatch}, append(cacheBuf, output...)...))
					}
					f.patchCache.Unlock()
				} else { // full frame
					f.frameCache.Lock()
					// does this frame exist in the cache?
					if idx := f.frameCache.index(hash); idx != -1 { // yes
						binary.LittleEndian.PutUint16(cacheBuf, uint16(idx))
						f.hub.sendAll(append([]byte{FrameCache}, bytes.TrimRight(cacheBuf, "\x00")...))
					} else { // no
						f.frameCache.add(hash, output)
						binary.LittleEndian.PutUint16(cacheBuf, uint16(f.frameCache.index(hash)))
						f.hub.sendAll(append([]byte{Frame}, append(cacheBuf, output...)...))
					}
					f.frameCache.Unlock()
				}
			} else if f.hub.frameSkipping { // if frame skipping is enabled however, update the frames skipped
				framesSkipped++
			}

			// reset various flags
			dirtied = false
			dirtiedPixelCount = 0
			e = Frame
			copy(dirtiedPixels, emptyDirtiedPixels)
		case c := <-f.clientSync:
			f.sync(c)
		}
	}
}

// sync sends the current frame and both caches to the provided
// client, so a late joiner can resolve cache indices the other
// clients already hold.
func (f *feed) sync(c *Client) {
	frameData, err := cbrotli.Encode(f.currentFrame, cbrotli.WriterOptions{
		Quality: 9,
	})
	if err != nil {
		f.hub.logger.Errorf("frame sync compression: %v", err)
		return
	}

	c.Send <- append([]byte{FrameSync}, frameData...)

	// send caches
	f.patchCache.RLock()
	patches := f.patchCache.serialize()
	f.patchCache.RUnlock()
	c.Send <- append([]byte{PatchCacheSync}, patches...)

	f.frameCache.RLock()
	frames := f.frameCache.serialize()
	f.frameCache.RUnlock()
	c.Send <- append([]byte{FrameCacheSync}, frames...)
}
