package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chative-support-desk/server/internal/agent/model"
	errx "github.com/chative-support-desk/server/internal/core/error"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

const maxBodyBytes = 64 << 10

type turnRequest struct {
	Query string `json:"query"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type historyResponse struct {
	SessionID string       `json:"session_id"`
	Turns     []model.Turn `json:"turns"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: s.manager.NewSession()})
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.manager.Handle(r.Context(), chi.URLParam(r, "sessionID"), req.Query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleStatelessTurn runs one turn over the history supplied by the
// caller; nothing is stored server side.
func (s *Server) handleStatelessTurn(w http.ResponseWriter, r *http.Request) {
	var in model.QueryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	in.Query = strings.TrimSpace(in.Query)
	if in.Query == "" {
		writeError(w, r, errx.BadRequest(errors.New("query is empty")))
		return
	}
	if in.SessionID == "" {
		in.SessionID = s.manager.NewSession()
	}

	res, err := s.runner.Invoke(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, errx.BadRequest(errors.New("limit must be a non-negative integer")))
			return
		}
		limit = n
	}

	sessionID := chi.URLParam(r, "sessionID")
	turns, err := s.manager.History(r.Context(), sessionID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{SessionID: sessionID, Turns: turns})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Reset(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errx.BadRequest(err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errx.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logx.Error().Err(err).Str("request_id", GetRequestID(r.Context())).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: errx.MessageOf(err), RequestID: GetRequestID(r.Context())})
}
