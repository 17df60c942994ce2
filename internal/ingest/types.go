package ingest

import "time"

// one inbound chat message
type Event struct {
	Username  string
	Text      string
	Timestamp time.Time
}

// the outcome of ingesting one event
type Result struct {
	SessionID  int64 `json:"session_id"`
	MessageID  int64 `json:"message_id"`
	NewSession bool  `json:"new_session"`
}
