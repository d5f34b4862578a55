// ABOUTME: JSON control-message types for the SEA stream handshake
// ABOUTME: Chunk payloads themselves travel as raw binary websocket frames, not JSON
package seastream

// Envelope is the top-level wrapper for every JSON control message sent
// over the websocket connection. Audio chunk bytes never go through
// Envelope: they're sent as binary frames, already in the exact
// fixed-size layout internal/chunkcodec expects.
type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ClientHello opens the handshake.
type ClientHello struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
}

// ServerHello answers ClientHello and describes the stream the server
// is about to send: the SEA container header fields the client needs
// before it can feed chunk bytes to a Decoder.
type ServerHello struct {
	ServerID       string `json:"server_id"`
	Name           string `json:"name"`
	SampleRate     uint32 `json:"sample_rate"`
	Channels       uint8  `json:"channels"`
	ChunkSize      uint16 `json:"chunk_size"`
	FramesPerChunk uint16 `json:"frames_per_chunk"`
	Metadata       string `json:"metadata,omitempty"`
}

// ClientState reports playback state back to the server.
type ClientState struct {
	State  string `json:"state"` // "playing" or "idle"
	Volume int    `json:"volume"`
}

// ServerCommand is a control message from the server to a connected client.
type ServerCommand struct {
	Command string `json:"command"` // "play", "pause", "stop"
}
