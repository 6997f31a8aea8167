// Package escalation picks the human agent a turn is handed to and tells
// the support queue about it.
package escalation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chative-support-desk/server/internal/agent/model"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

// escalationKey is the specialty searched for explicit hand-off requests.
const escalationKey = "escalation"

// liveAgentPhrase asks for a human regardless of the classified category.
const liveAgentPhrase = "live agent"

// Handoff is the resolved agent plus the message shown to the customer.
type Handoff struct {
	Agent   model.Agent
	Message string
	// Fallback is set when no specialty matched and the first agent was used.
	Fallback bool
}

// Resolver matches turns against an immutable agent roster.
type Resolver struct {
	agents []model.Agent
}

func NewResolver(agents []model.Agent) (*Resolver, error) {
	if len(agents) == 0 {
		return nil, errors.New("escalation: agent roster is empty")
	}
	roster := make([]model.Agent, len(agents))
	copy(roster, agents)
	return &Resolver{agents: roster}, nil
}

// MatchKey is the specialty looked up for a turn: Escalation turns and
// live agent requests look for the escalation desk, everything else for
// its category.
func MatchKey(category model.Category, query string) string {
	if category == model.CategoryEscalation || strings.Contains(strings.ToLower(query), liveAgentPhrase) {
		return escalationKey
	}
	return strings.ToLower(string(category))
}

// Resolve returns the first agent in roster order whose specialty contains
// the match key. When none does, the first agent of the roster is used.
func (r *Resolver) Resolve(category model.Category, query string) Handoff {
	key := MatchKey(category, query)

	agent, fallback := r.agents[0], true
	for _, a := range r.agents {
		if a.Covers(key) {
			agent, fallback = a, false
			break
		}
	}
	if fallback {
		logx.Warn().Str("match_key", key).Str("agent", agent.Name).
			Msg("No agent specialty matched, falling back to first agent")
	}

	return Handoff{Agent: agent, Message: Message(agent), Fallback: fallback}
}

// Message formats the hand-off text for agent.
func Message(agent model.Agent) string {
	return fmt.Sprintf(
		"Your query has been escalated to %s (specialty: %s). Please contact them at %s with your order ID and details.",
		agent.Name, agent.Specialty, agent.ContactNumber,
	)
}
