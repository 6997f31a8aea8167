package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chative-support-desk/server/internal/agent/graph/conversations"
	"github.com/chative-support-desk/server/internal/agent/model"
	"github.com/chative-support-desk/server/internal/agent/repo"
	errx "github.com/chative-support-desk/server/internal/core/error"
)

// cannedRunner answers every query with a Delivery reply.
type cannedRunner struct {
	err  error
	last model.QueryInput
}

func (r *cannedRunner) Invoke(_ context.Context, in model.QueryInput) (*model.TurnResult, error) {
	r.last = in
	if r.err != nil {
		return nil, r.err
	}
	turn := model.Turn{
		Query:     in.Query,
		Category:  model.CategoryDelivery,
		Sentiment: model.SentimentNeutral,
		OrderID:   model.NoOrderID,
		Response:  "Your order is being processed.",
		Timestamp: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	return &model.TurnResult{
		SessionID: in.SessionID,
		Category:  turn.Category,
		Sentiment: turn.Sentiment,
		OrderID:   turn.OrderID,
		Response:  turn.Response,
		History:   conversations.Append(in.History, turn),
	}, nil
}

func newTestServer(runner *cannedRunner) *Server {
	manager := conversations.NewManager(runner, repo.NewMemorySessionStore(), nil,
		conversations.WithIDGenerator(func() string { return "s-new" }))
	return New(model.ServerConfig{RequestTimeout: time.Second}, manager, runner)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(&cannedRunner{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateSession(t *testing.T) {
	rec := do(t, newTestServer(&cannedRunner{}), http.MethodPost, "/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"session_id":"s-new"}`, rec.Body.String())
}

func TestTurnAndHistory(t *testing.T) {
	s := newTestServer(&cannedRunner{})

	rec := do(t, s, http.MethodPost, "/v1/sessions/s-1/turns", `{"query":"Where is my parcel?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.TurnResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "s-1", res.SessionID)
	assert.Equal(t, model.CategoryDelivery, res.Category)
	assert.Len(t, res.History, 1)

	do(t, s, http.MethodPost, "/v1/sessions/s-1/turns", `{"query":"Any update?"}`)

	rec = do(t, s, http.MethodGet, "/v1/sessions/s-1/turns?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hist historyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	require.Len(t, hist.Turns, 1)
	assert.Equal(t, "Any update?", hist.Turns[0].Query)
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	rec := do(t, newTestServer(&cannedRunner{}), http.MethodGet, "/v1/sessions/s-1/turns?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetSession(t *testing.T) {
	s := newTestServer(&cannedRunner{})
	do(t, s, http.MethodPost, "/v1/sessions/s-1/turns", `{"query":"Where is my parcel?"}`)

	rec := do(t, s, http.MethodDelete, "/v1/sessions/s-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/v1/sessions/s-1/turns", "")
	var hist historyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	assert.Empty(t, hist.Turns)
}

func TestTurnValidation(t *testing.T) {
	s := newTestServer(&cannedRunner{})

	tests := []struct {
		name string
		body string
	}{
		{"empty query", `{"query":"  "}`},
		{"malformed json", `{"query":`},
		{"unknown field", `{"question":"hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/sessions/s-1/turns", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), errx.BadRequestMessage)
		})
	}
}

func TestClassifierOutageMapsToBadGateway(t *testing.T) {
	runner := &cannedRunner{err: errx.WrapClassifier("intent", errors.New("deadline exceeded"))}
	rec := do(t, newTestServer(runner), http.MethodPost, "/v1/sessions/s-1/turns", `{"query":"Where is my parcel?"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errx.ClassifierErrorMessage, body.Error)
	assert.NotEmpty(t, body.RequestID)
}

func TestStatelessTurnUsesCallerHistory(t *testing.T) {
	runner := &cannedRunner{}
	s := newTestServer(runner)

	body := `{"query":"Any update?","history":[{"query":"Where is my parcel?","category":"Delivery","sentiment":"Neutral","order_id":"None","response":"ok","escalated":false,"timestamp":"2025-03-01T09:00:00Z"}]}`
	rec := do(t, s, http.MethodPost, "/v1/turns", body)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "s-new", runner.last.SessionID)
	assert.Len(t, runner.last.History, 1)

	var res model.TurnResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.History, 2)
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetRequestID(r.Context())))
	}))

	t.Run("keeps valid incoming id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", id)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, id, rec.Body.String())
		assert.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("replaces invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		_, err := uuid.Parse(rec.Body.String())
		assert.NoError(t, err)
	})
}

func TestTimeoutMiddlewareSetsDeadline(t *testing.T) {
	var hasDeadline bool
	handler := TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, hasDeadline)
}
