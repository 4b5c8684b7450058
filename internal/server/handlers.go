package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"topictrail/internal/explorer"
)

// topicRequest is the body for topic submission.
type topicRequest struct {
	Topic string `json:"topic"`
}

// sessionResponse is returned on session creation.
type sessionResponse struct {
	SessionID string        `json:"session_id"`
	View      explorer.View `json:"view"`
}

// navResponse is returned by navigation endpoints. Moved is false when
// the trail boundary made the request a no-op.
type navResponse struct {
	Moved bool          `json:"moved"`
	Topic string        `json:"topic,omitempty"`
	View  explorer.View `json:"view"`
}

// trailResponse lists the visited topics and cursor position.
type trailResponse struct {
	Topics     []string `json:"topics"`
	Cursor     int      `json:"cursor"`
	CanBack    bool     `json:"canBack"`
	CanForward bool     `json:"canForward"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.createSession()

	var req topicRequest
	if r.Body != nil {
		// An initial topic in the body is optional.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if strings.TrimSpace(req.Topic) != "" {
		// Fetches outlive the HTTP request; results stream over the
		// session's WebSocket.
		sess.explorer.Submit(context.Background(), req.Topic)
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID: sess.ID,
		View:      sess.explorer.View(),
	})
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	writeJSON(w, http.StatusOK, sess.explorer.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.dropSession(chi.URLParam(r, "sessionID")) {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitTopic(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	var req topicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	sess.explorer.Submit(context.Background(), req.Topic)
	writeJSON(w, http.StatusAccepted, sess.explorer.View())
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	moved := sess.explorer.Back(context.Background())
	writeJSON(w, http.StatusOK, navResponse{Moved: moved, View: sess.explorer.View()})
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	moved := sess.explorer.Forward(context.Background())
	writeJSON(w, http.StatusOK, navResponse{Moved: moved, View: sess.explorer.View()})
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	picked, started := sess.explorer.Random(context.Background())
	writeJSON(w, http.StatusAccepted, navResponse{Moved: started, Topic: picked, View: sess.explorer.View()})
}

func (s *Server) handleTrail(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	v := sess.explorer.View()
	writeJSON(w, http.StatusOK, trailResponse{
		Topics:     v.Trail,
		Cursor:     v.Cursor,
		CanBack:    v.CanBack,
		CanForward: v.CanForward,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	v := sess.explorer.View()
	if v.Topic == "" {
		writeError(w, http.StatusConflict, "nothing explored yet")
		return
	}

	html, err := ExportHTML(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
