package emulator

// Status represents the run state of the board's frame
// loop. It can be one of the following:
//
//   - Running
//   - Paused
//   - Stopped
type Status int

const (
	// Running represents a board that is producing frames.
	Running Status = iota
	// Paused represents a board whose frame loop is held.
	Paused
	// Stopped represents a board that has shut down.
	Stopped
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

func (s Status) IsRunning() bool {
	return s == Running
}

func (s Status) IsPaused() bool {
	return s == Paused
}

func (s Status) IsStopped() bool {
	return s == Stopped
}
