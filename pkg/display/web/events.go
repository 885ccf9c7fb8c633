package web

// Event identifies a setting carried in a client message.
type Event = uint8

const (
	_ Event = iota
	Compression
	CompressionLevel
	FramePatching
	FrameSkipping
	ClientStatus
	SpritesHidden
	StarsHidden
	FramePatchingRatio
	KeepAlive Event = 254
	Closing   Event = 255
)

// FeedEvent identifies a feed state change broadcast to clients.
type FeedEvent = uint8

const (
	PausePlay FeedEvent = iota
	Status
	SpritesEnabled
	StarsEnabled
)

// Type identifies a server to client message.
type Type = uint8

const (
	Frame Type = iota
	FramePatch
	FrameSkip
	ClientInfo
	PatchCache
	PatchCacheSync
	FrameCache
	FrameCacheSync
	FrameSync
	ClientListSync
	ClientClosing
	ServerInfo
	FeedInfo
)
