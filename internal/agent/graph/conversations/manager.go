package conversations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chative-support-desk/server/internal/agent/model"
	errx "github.com/chative-support-desk/server/internal/core/error"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

// GoodbyeMessage answers the exit commands.
const GoodbyeMessage = "Thank you for using our support service. Goodbye!"

// DefaultNotifyTimeout bounds the escalation publish of one turn.
const DefaultNotifyTimeout = 2 * time.Second

var exitCommands = map[string]bool{"exit": true, "quit": true}

// Workflow runs one turn.
type Workflow interface {
	Invoke(ctx context.Context, in model.QueryInput) (*model.TurnResult, error)
}

// Manager owns session histories on behalf of the workflow: it loads the
// history before a turn and persists the appended turn afterwards.
type Manager struct {
	workflow Workflow
	store    model.SessionStore
	notifier model.EscalationNotifier
	newID    func() string
	now      func() time.Time

	notifyTimeout time.Duration
}

type ManagerOption func(*Manager)

// WithIDGenerator replaces the uuid session id generator.
func WithIDGenerator(fn func() string) ManagerOption {
	return func(m *Manager) { m.newID = fn }
}

// WithNotifyTimeout bounds each escalation publish; d <= 0 keeps the default.
func WithNotifyTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.notifyTimeout = d
		}
	}
}

// WithClock replaces time.Now for escalation events.
func WithClock(fn func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = fn }
}

func NewManager(workflow Workflow, store model.SessionStore, notifier model.EscalationNotifier, opts ...ManagerOption) *Manager {
	m := &Manager{
		workflow: workflow,
		store:    store,
		notifier: notifier,
		newID:    func() string { return uuid.NewString() },
		now:      func() time.Time { return time.Now().UTC() },

		notifyTimeout: DefaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewSession allocates a session id. Nothing is stored until the first turn.
func (m *Manager) NewSession() string {
	return m.newID()
}

// Handle runs one turn of sessionID. A failed turn leaves the stored
// history untouched, so the session can simply retry.
func (m *Manager) Handle(ctx context.Context, sessionID, query string) (*model.TurnResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errx.BadRequest(errors.New("query is empty"))
	}
	if sessionID == "" {
		return nil, errx.BadRequest(errors.New("session id is empty"))
	}

	if exitCommands[strings.ToLower(query)] {
		return m.end(ctx, sessionID)
	}

	history, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	res, err := m.workflow.Invoke(ctx, model.QueryInput{
		SessionID: sessionID,
		Query:     query,
		History:   history,
	})
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("Turn failed")
		return nil, err
	}

	if len(res.History) == len(history)+1 {
		turn, _ := res.LastTurn()
		if err := m.store.Append(ctx, sessionID, turn); err != nil {
			return nil, err
		}
	}

	if res.Escalated {
		m.notify(ctx, res, query)
	}
	return res, nil
}

// end closes the session: the goodbye is answered, the history dropped and
// a fresh session id handed back.
func (m *Manager) end(ctx context.Context, sessionID string) (*model.TurnResult, error) {
	if err := m.store.Reset(ctx, sessionID); err != nil {
		return nil, err
	}
	next := m.newID()
	logx.Info().Str("session_id", sessionID).Str("next_session_id", next).Msg("Session closed by user")

	return &model.TurnResult{
		SessionID:    next,
		Category:     model.CategoryDefault,
		Sentiment:    model.SentimentNeutral,
		OrderID:      model.NoOrderID,
		Response:     GoodbyeMessage,
		SessionEnded: true,
		History:      []model.Turn{},
	}, nil
}

func (m *Manager) notify(ctx context.Context, res *model.TurnResult, query string) {
	if m.notifier == nil {
		return
	}
	event := model.EscalationEvent{
		SessionID:     res.SessionID,
		Category:      res.Category,
		Sentiment:     res.Sentiment,
		OrderID:       res.OrderID,
		Query:         query,
		Agent:         res.Agent,
		ContactNumber: res.AgentContact,
		Timestamp:     m.now(),
	}
	if turn, ok := res.LastTurn(); ok {
		event.Timestamp = turn.Timestamp
	}
	ctx, cancel := context.WithTimeout(ctx, m.notifyTimeout)
	defer cancel()
	if err := m.notifier.Notify(ctx, event); err != nil {
		logx.Warn().Err(err).Str("session_id", res.SessionID).Msg("Escalation notification failed")
	}
}

// History returns the stored turns of sessionID, at most limit of the most
// recent ones when limit > 0.
func (m *Manager) History(ctx context.Context, sessionID string, limit int) ([]model.Turn, error) {
	history, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return Recent(history, limit), nil
}

// Reset drops the history of sessionID.
func (m *Manager) Reset(ctx context.Context, sessionID string) error {
	return m.store.Reset(ctx, sessionID)
}
