package board

import (
	"github.com/retroboard/skyfox/internal/types"
	"github.com/retroboard/skyfox/internal/video"
	"github.com/retroboard/skyfox/pkg/log"
)

// Opt is a function that modifies a Board instance.
type Opt func(b *Board)

func WithLogger(l log.Logger) Opt {
	return func(b *Board) {
		b.Logger = l
	}
}

// WithPalette replaces the grey fallback palette.
func WithPalette(p video.Palette) Opt {
	return func(b *Board) {
		b.palette = p
	}
}

// WithState restores a previously saved board state.
func WithState(data []byte) Opt {
	return func(b *Board) {
		b.Load(types.StateFromBytes(data))
	}
}

// WithFrameHook registers a function run once per frame, before the
// frame is rendered. It is the stand-in for the CPU: the only mutator
// of the RAM windows and the control latch while the loop runs.
func WithFrameHook(hook func(*Board)) Opt {
	return func(b *Board) {
		b.hook = hook
	}
}
