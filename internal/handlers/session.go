package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slidechat-backend/internal/models"
	"slidechat-backend/internal/pptx"
	"slidechat-backend/internal/session"
)

// SessionHandler exposes the conversation session controller over HTTP: one
// session per conversation, one round trip per message, export on demand.
type SessionHandler struct {
	sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, models.SessionResponse{
		ID:       s.ID,
		Messages: []models.Message{},
		Slides:   []models.Slide{},
	})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	snap, err := h.sessions.Snapshot(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.sessions.Send(r.Context(), id, req.Message)
	switch {
	case errors.Is(err, session.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, session.ErrBusy):
		writeError(w, http.StatusConflict, "A generation request is already in progress for this session")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, genericFailureMessage)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	deck, err := h.sessions.Slides(id)
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "Session not found")
		return
	case errors.Is(err, session.ErrEmptyDeck):
		writeError(w, http.StatusBadRequest, "No presentation to download. Please create a presentation first.")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, genericFailureMessage)
		return
	}

	data, err := pptx.Build(deck, pptx.Metadata{
		Title:   deck[0].Title,
		Author:  "AI PowerPoint Generator",
		Company: "AI Assistant",
		Subject: "AI Generated Presentation",
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to download presentation. Please try again.")
		return
	}

	fileName := fmt.Sprintf("AI_Presentation_%d.pptx", time.Now().UnixMilli())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
