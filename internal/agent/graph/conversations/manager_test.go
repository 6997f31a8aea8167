package conversations

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chative-support-desk/server/internal/agent/model"
	"github.com/chative-support-desk/server/internal/agent/repo"
	errx "github.com/chative-support-desk/server/internal/core/error"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// echoWorkflow answers every query with a canned turn and records its inputs.
type echoWorkflow struct {
	inputs   []model.QueryInput
	escalate bool
	err      error
	noAppend bool
}

func (w *echoWorkflow) Invoke(_ context.Context, in model.QueryInput) (*model.TurnResult, error) {
	w.inputs = append(w.inputs, in)
	if w.err != nil {
		return nil, w.err
	}
	turn := model.Turn{
		Query:     in.Query,
		Category:  model.CategoryDelivery,
		Sentiment: model.SentimentNeutral,
		OrderID:   model.NoOrderID,
		Response:  "reply to " + in.Query,
		Escalated: w.escalate,
		Timestamp: now,
	}
	history := in.History
	if !w.noAppend {
		history = Append(in.History, turn)
	}
	res := &model.TurnResult{
		SessionID: in.SessionID,
		Category:  turn.Category,
		Sentiment: turn.Sentiment,
		OrderID:   turn.OrderID,
		Response:  turn.Response,
		Escalated: w.escalate,
		History:   history,
	}
	if w.escalate {
		res.Agent = "Sarah"
		res.AgentContact = "+1-555-0102"
	}
	return res, nil
}

type recordingNotifier struct {
	events []model.EscalationEvent
	err    error
	// block makes Notify wait for its context to end.
	block bool
}

func (n *recordingNotifier) Notify(ctx context.Context, e model.EscalationEvent) error {
	n.events = append(n.events, e)
	if n.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return n.err
}

func newManager(w Workflow, n model.EscalationNotifier, opts ...ManagerOption) (*Manager, *repo.MemorySessionStore) {
	store := repo.NewMemorySessionStore()
	ids := []string{"s-2", "s-3", "s-4"}
	m := NewManager(w, store, n,
		WithIDGenerator(func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}),
		WithClock(func() time.Time { return now }),
	)
	for _, opt := range opts {
		opt(m)
	}
	return m, store
}

func TestHandlePersistsTurns(t *testing.T) {
	ctx := context.Background()
	w := &echoWorkflow{}
	m, store := newManager(w, nil)

	_, err := m.Handle(ctx, "s-1", "Where is my parcel?")
	require.NoError(t, err)
	res, err := m.Handle(ctx, "s-1", "  Still nothing  ")
	require.NoError(t, err)

	require.Len(t, w.inputs, 2)
	assert.Empty(t, w.inputs[0].History)
	assert.Len(t, w.inputs[1].History, 1)
	assert.Equal(t, "Still nothing", w.inputs[1].Query)
	assert.Len(t, res.History, 2)

	stored, err := store.Load(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Where is my parcel?", stored[0].Query)
	assert.Equal(t, "Still nothing", stored[1].Query)
}

func TestHandleRejectsEmptyInput(t *testing.T) {
	m, _ := newManager(&echoWorkflow{}, nil)

	_, err := m.Handle(context.Background(), "s-1", "   ")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errx.StatusOf(err))

	_, err = m.Handle(context.Background(), "", "hello there")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errx.StatusOf(err))
}

func TestExitEndsSession(t *testing.T) {
	ctx := context.Background()
	w := &echoWorkflow{}
	m, store := newManager(w, nil)

	_, err := m.Handle(ctx, "s-1", "Where is my parcel?")
	require.NoError(t, err)

	for _, cmd := range []string{"exit", "QUIT"} {
		res, err := m.Handle(ctx, "s-1", cmd)
		require.NoError(t, err)
		assert.True(t, res.SessionEnded)
		assert.Equal(t, GoodbyeMessage, res.Response)
		assert.Equal(t, model.CategoryDefault, res.Category)
		assert.NotEqual(t, "s-1", res.SessionID)
		assert.Empty(t, res.History)
	}

	assert.Len(t, w.inputs, 1, "exit commands never reach the workflow")
	stored, err := store.Load(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestFailedTurnLeavesHistoryUntouched(t *testing.T) {
	ctx := context.Background()
	w := &echoWorkflow{}
	m, store := newManager(w, nil)

	_, err := m.Handle(ctx, "s-1", "Where is my parcel?")
	require.NoError(t, err)

	w.err = errx.WrapClassifier("intent", errors.New("deadline exceeded"))
	_, err = m.Handle(ctx, "s-1", "Hello?")
	require.Error(t, err)
	assert.ErrorIs(t, err, errx.ErrClassifierUnavailable)

	stored, err := store.Load(ctx, "s-1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	// the session survives and the next turn goes through
	w.err = nil
	res, err := m.Handle(ctx, "s-1", "Hello again")
	require.NoError(t, err)
	assert.Len(t, res.History, 2)
}

func TestTurnWithoutNewHistoryIsNotStored(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(&echoWorkflow{noAppend: true}, nil)

	_, err := m.Handle(ctx, "s-1", "Where is my parcel?")
	require.NoError(t, err)

	stored, err := store.Load(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestEscalationIsNotified(t *testing.T) {
	n := &recordingNotifier{}
	m, _ := newManager(&echoWorkflow{escalate: true}, n)

	_, err := m.Handle(context.Background(), "s-1", "My payment failed twice")
	require.NoError(t, err)

	require.Len(t, n.events, 1)
	e := n.events[0]
	assert.Equal(t, "s-1", e.SessionID)
	assert.Equal(t, "Sarah", e.Agent)
	assert.Equal(t, "+1-555-0102", e.ContactNumber)
	assert.Equal(t, "My payment failed twice", e.Query)
	assert.Equal(t, now, e.Timestamp)
}

func TestNotifierFailureDoesNotFailTurn(t *testing.T) {
	n := &recordingNotifier{err: errors.New("broker down")}
	m, _ := newManager(&echoWorkflow{escalate: true}, n)

	res, err := m.Handle(context.Background(), "s-1", "My payment failed twice")
	require.NoError(t, err)
	assert.True(t, res.Escalated)
	assert.Len(t, n.events, 1)
}

func TestStalledNotifierIsBounded(t *testing.T) {
	n := &recordingNotifier{block: true}
	m, store := newManager(&echoWorkflow{escalate: true}, n, WithNotifyTimeout(20*time.Millisecond))

	start := time.Now()
	res, err := m.Handle(context.Background(), "s-1", "My payment failed twice")
	require.NoError(t, err)
	assert.True(t, res.Escalated)
	assert.Less(t, time.Since(start), time.Second)
	assert.Len(t, n.events, 1)

	stored, err := store.Load(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestHistoryAndReset(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(&echoWorkflow{}, nil)

	for _, q := range []string{"one", "two", "three"} {
		_, err := m.Handle(ctx, "s-1", q)
		require.NoError(t, err)
	}

	turns, err := m.History(ctx, "s-1", 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "two", turns[0].Query)

	require.NoError(t, m.Reset(ctx, "s-1"))
	turns, err = m.History(ctx, "s-1", 0)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestNewSessionUsesGenerator(t *testing.T) {
	m, _ := newManager(&echoWorkflow{}, nil)
	assert.Equal(t, "s-2", m.NewSession())
	assert.Equal(t, "s-3", m.NewSession())
}
