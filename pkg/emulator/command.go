package emulator

// CommandPacket is a command packet that is sent to the
// board to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the board to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the board back to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the frame loop.
	CommandPause Command = iota
	// CommandResume resumes the frame loop.
	CommandResume
	// CommandClose shuts the board down.
	CommandClose
	// CommandReset clears the RAM windows and the control latch.
	CommandReset
	// CommandSaveState serializes the board into the response data.
	CommandSaveState
	// CommandLoadState restores the board from the packet data.
	CommandLoadState
)
