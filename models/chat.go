package models

// ChatRequest is the payload for /api/chat and /api/chat/stream.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the non-streaming reply.
type ChatResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// SessionResponse is returned when a new session is created.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// StreamEvent is one SSE frame during a streamed turn. Exactly one of the
// payload fields is set per event.
type StreamEvent struct {
	Status    string `json:"status,omitempty"`
	Chunk     string `json:"chunk,omitempty"`
	Error     string `json:"error,omitempty"`
	Done      bool   `json:"done,omitempty"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp,omitempty"`
}
