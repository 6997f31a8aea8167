package model

// AppState is the graph-local accounting record for one workflow run.
// Concurrency model:
//   - Registered as Graph Local State via compose.WithGenLocalState.
//   - Read and written only inside state handlers or compose.ProcessState,
//     which Eino serialises, so no mutex is needed.
type AppState struct {
	SessionID       string
	Visited         []string // node keys in execution order
	ClassifierCalls int
	TotalCostUSD    float64
}

// WorkflowState is the mutable record threaded through the workflow for a
// single turn. Each node reads the fields written before it and writes its
// own. It is created by the first node and discarded once LogTurn returns.
type WorkflowState struct {
	SessionID string
	Query     string
	History   []Turn

	Category  Category
	Sentiment Sentiment
	OrderID   OrderID
	Response  string
	// NeedsEscalation routes the turn to the escalation resolver.
	NeedsEscalation bool
	// Rule names the responder rule that produced Response, for logs.
	Rule         string
	Agent        string
	AgentContact string
	// Degraded is set when a classifier failed and defaults were used.
	Degraded bool
}

// QueryInput is the caller-facing input of a single turn.
type QueryInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
	History   []Turn `json:"history,omitempty"`
}

// TurnResult is the caller-facing output of a single turn.
type TurnResult struct {
	SessionID       string    `json:"session_id"`
	Category        Category  `json:"category"`
	Sentiment       Sentiment `json:"sentiment"`
	OrderID         OrderID   `json:"order_id"`
	Response        string    `json:"response"`
	Escalated       bool      `json:"escalated"`
	Agent           string    `json:"agent,omitempty"`
	AgentContact    string    `json:"agent_contact,omitempty"`
	Degraded        bool      `json:"degraded,omitempty"`
	SessionEnded    bool      `json:"session_ended,omitempty"` // SessionID is then the fresh session
	History         []Turn    `json:"conversation_history"`
	Path            []string  `json:"path,omitempty"`
	ClassifierCalls int       `json:"classifier_calls"`
	CostUSD         float64   `json:"cost_usd"`
}

// LastTurn returns the turn appended by this run, if any.
func (r *TurnResult) LastTurn() (Turn, bool) {
	if r == nil || len(r.History) == 0 {
		return Turn{}, false
	}
	return r.History[len(r.History)-1], true
}
