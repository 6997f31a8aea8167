package conversations

import "github.com/chative-support-desk/server/internal/agent/model"

// Append returns a new history with turn added at the end. The input slice
// is never written to. A turn without response text is dropped and the
// history is returned as is.
func Append(history []model.Turn, turn model.Turn) []model.Turn {
	if turn.Response == "" {
		return history
	}
	out := make([]model.Turn, len(history), len(history)+1)
	copy(out, history)
	return append(out, turn)
}

// Recent returns a copy of the last n turns; n <= 0 returns everything.
func Recent(history []model.Turn, n int) []model.Turn {
	if n <= 0 || len(history) <= n {
		return model.CloneTurns(history)
	}
	return model.CloneTurns(history[len(history)-n:])
}
