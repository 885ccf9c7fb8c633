package video

import (
	"github.com/retroboard/skyfox/internal/types"
)

// Control is a snapshot of the video control latch. The renderer only
// ever sees a copy sampled at frame start, so a CPU write landing
// mid-frame cannot tear a frame between layers.
type Control uint8

// FlipScreen reports whether the frame is mirrored on both axes.
func (c Control) FlipScreen() bool {
	return c&types.Bit0 != 0
}

// PatternPhase selects which of the four pattern ROM banks the star
// generator reads this frame.
func (c Control) PatternPhase() int {
	return int(c&(types.Bit1|types.Bit2)) >> 1
}

// BlinkEnabled reports whether star blinking is active.
func (c Control) BlinkEnabled() bool {
	return c&types.Bit3 != 0
}

// BlinkPhase returns the star class suppressed while blinking is
// active. Stars carry their class in the low two pen bits.
func (c Control) BlinkPhase() uint8 {
	return uint8(c>>4) & 3
}

// WideTileBank reports whether bit 15 of a sprite code addresses the
// upper tile bank, doubling the reachable macro tiles.
func (c Control) WideTileBank() bool {
	return c&types.Bit7 != 0
}
