package events

import "github.com/hammad983ae/sustaino-sub007/internal/session"

// SessionClearedEvent is broadcast when a workspace erases its persisted
// session so independent UI contexts can drop their own copies.
type SessionClearedEvent struct {
	UserID      string   `json:"user_id"`
	ClearedKeys []string `json:"cleared_keys"`
}

// DataRefreshedEvent carries the freshly hydrated session so listeners can
// resynchronize without re-querying storage themselves.
type DataRefreshedEvent struct {
	JobID   string        `json:"job_id"`
	Session *session.Data `json:"session"`
}

// NotificationEvent is a short transient user-facing message.
type NotificationEvent struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	JobNumber int    `json:"job_number,omitempty"`
}
