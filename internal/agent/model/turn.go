package model

import "time"

// Turn is one query/response exchange. Turns are immutable once appended
// to a session history.
type Turn struct {
	Query     string    `json:"query"`
	Category  Category  `json:"category"`
	Sentiment Sentiment `json:"sentiment"`
	OrderID   OrderID   `json:"order_id"`
	Response  string    `json:"response"`
	Escalated bool      `json:"escalated"`
	Agent     string    `json:"agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CloneTurns returns a copy of history that can be appended to without
// aliasing the caller's backing array.
func CloneTurns(history []Turn) []Turn {
	out := make([]Turn, len(history))
	copy(out, history)
	return out
}
