package types

// ExecuteRequest represents a tool execution request
type ExecuteRequest struct {
	Tool      string      `json:"tool"`
	Arguments interface{} `json:"arguments"`
}

// DiscoverRequest represents an intent-based tool search
type DiscoverRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// Stream frame types
const (
	FrameCall   = "call"
	FramePing   = "ping"
	FramePong   = "pong"
	FrameResult = "result"
	FrameError  = "error"
	FrameSystem = "system"
)

// StreamMessage is a websocket call frame. An empty Type means call.
type StreamMessage struct {
	ID        string      `json:"id,omitempty"`
	Type      string      `json:"type,omitempty"`
	Tool      string      `json:"tool,omitempty"`
	Arguments interface{} `json:"arguments,omitempty"`
}

// StreamReply answers a StreamMessage with the same ID
type StreamReply struct {
	ID        string  `json:"id,omitempty"`
	Type      string  `json:"type"`
	Result    *Result `json:"result,omitempty"`
	Message   string  `json:"message,omitempty"`
	Timestamp int64   `json:"timestamp"`
}
