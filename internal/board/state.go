package board

import (
	"github.com/retroboard/skyfox/internal/types"
	"github.com/retroboard/skyfox/internal/video"
)

// Save serializes the control latch, both RAM windows and the frame
// counter. The ROMs are not part of a state.
func (b *Board) Save(s *types.State) {
	s.Write8(uint8(b.control))
	s.WriteData(b.spriteRAM)
	s.WriteData(b.starRAM)
	s.Write64(b.frames)
}

// Load restores a state produced by Save.
func (b *Board) Load(s *types.State) {
	b.control = video.Control(s.Read8())
	s.ReadData(b.spriteRAM)
	s.ReadData(b.starRAM)
	b.frames = s.Read64()
}

// SaveState serializes the board to a byte slice.
func (b *Board) SaveState() []byte {
	s := types.NewState()
	b.Save(s)
	return s.Bytes()
}
