package web

import (
	"encoding/binary"
	"sync"
)

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a fixed-size ring of recently sent payloads keyed by
// hash. When a frame or patch repeats, its index is sent instead of
// the payload.
type cache struct {
	cache []*cacheEntry
	idx   int
	size  int
	sync.RWMutex
}

func newCache(size int) *cache {
	c := &cache{
		cache: make([]*cacheEntry, size),
		size:  size,
	}
	for i := 0; i < size; i++ {
		c.cache[i] = &cacheEntry{
			hash: 0,
			data: []byte{},
		}
	}

	return c
}

func (c *cache) add(hash uint64, output []byte) {
	c.cache[c.idx].data = output
	c.cache[c.idx].hash = hash

	c.idx = (c.idx + 1) % c.size
}

func (c *cache) index(hash uint64) int {
	for i, e := range c.cache {
		if e.hash == hash {
			return i
		}
	}

	return -1
}

// serialize flattens the populated entries into length, index, data
// records for syncing a newly connected client.
func (c *cache) serialize() []byte {
	var data []byte
	for i, e := range c.cache {
		if len(e.data) == 0 {
			continue
		}

		var length, idx = make([]byte, 2), make([]byte, 2)
		binary.LittleEndian.PutUint16(length, uint16(len(e.data)))
		binary.LittleEndian.PutUint16(idx, uint16(i))

		data = append(data, append(append(length, idx...), e.data...)...)
	}

	return data
}
