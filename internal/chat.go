package internal

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"techtrack-api/internal/assistant"
	"techtrack-api/internal/models"
)

type messageRequest struct {
	Text string `json:"text"`
}

type messagesResponse struct {
	Data []models.ChatMessage `json:"data"`
	Meta struct {
		Busy bool `json:"busy"`
	} `json:"meta"`
}

// listMessages returns the history of the caller's chat session
func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)
	session := s.Sessions.Get(SessionIDFromContext(r.Context()))

	msgs := session.Messages()
	if params.format == "html" {
		msgs = assistant.WithHTML(msgs)
	}

	var resp messagesResponse
	resp.Data = msgs
	resp.Meta.Busy = session.Busy()
	writeJSON(w, http.StatusOK, resp)
}

// postMessage asks the assistant about the current inventory. The query
// outlives the request so the reply lands in the history even if the
// client disconnects.
func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, "invalid JSON")
		return
	}

	sessionID := SessionIDFromContext(r.Context())
	session := s.Sessions.Get(sessionID)
	ctx := context.WithoutCancel(r.Context())

	reply, err := session.Send(ctx, s.Analyst, s.Store.List(), req.Text)
	switch {
	case errors.Is(err, assistant.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, CodeInvalidInput, err.Error())
		return
	case errors.Is(err, assistant.ErrQueryInFlight):
		writeError(w, http.StatusConflict, CodeQueryInFlight, err.Error())
		return
	case err != nil:
		s.Logger.Error("assistant query", zap.String("session", sessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternal, "assistant unavailable")
		return
	}

	if parseListParams(r).format == "html" {
		reply = assistant.WithHTML([]models.ChatMessage{reply})[0]
	}
	writeJSON(w, http.StatusOK, reply)
}
