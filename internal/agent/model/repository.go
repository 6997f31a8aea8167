package model

import (
	"context"
	"time"
)

// SessionStore keeps the ordered turn history of each session. It is owned
// by the caller of the workflow, never by the workflow itself.
type SessionStore interface {
	// Load returns the history of sessionID in chronological order; an
	// unknown session has an empty history.
	Load(ctx context.Context, sessionID string) ([]Turn, error)

	// Append adds a turn to the end of the history of sessionID.
	Append(ctx context.Context, sessionID string, turn Turn) error

	// Reset drops every turn of sessionID.
	Reset(ctx context.Context, sessionID string) error
}

// EscalationEvent is published whenever a turn is handed to a human agent.
type EscalationEvent struct {
	SessionID     string    `json:"session_id"`
	Category      Category  `json:"category"`
	Sentiment     Sentiment `json:"sentiment"`
	OrderID       OrderID   `json:"order_id"`
	Query         string    `json:"query"`
	Agent         string    `json:"agent"`
	ContactNumber string    `json:"contact_number,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// EscalationNotifier forwards hand-offs to the human support queue.
type EscalationNotifier interface {
	Notify(ctx context.Context, event EscalationEvent) error
}
