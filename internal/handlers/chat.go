package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"slidechat-backend/internal/models"
	"slidechat-backend/internal/services"
	"slidechat-backend/internal/slides"
)

const parseFailureMessage = "Failed to parse AI response. The AI did not return valid JSON. Please try rephrasing your request."
const genericFailureMessage = "Failed to generate content. Please try again."

// deckGenerator is what ChatHandler needs from the generation service.
type deckGenerator interface {
	Generate(ctx context.Context, message string, existing []models.Slide) ([]models.Slide, error)
}

// ChatHandler serves the stateless generation endpoint: one user message plus
// the caller's current deck in, a fresh normalized deck out.
type ChatHandler struct {
	generation deckGenerator // nil when no API key is configured
}

func NewChatHandler(generation deckGenerator) *ChatHandler {
	return &ChatHandler{generation: generation}
}

func (h *ChatHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.generation == nil {
		writeError(w, http.StatusInternalServerError, "API key not configured on server")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	deck, err := h.generation.Generate(r.Context(), req.Message, req.ExistingSlides)
	if err != nil {
		var perr *slides.ParseError
		if errors.As(err, &perr) {
			writeFailure(w, http.StatusInternalServerError, parseFailureMessage)
			return
		}

		message := genericFailureMessage
		var uerr *services.UpstreamError
		if errors.As(err, &uerr) && uerr.Err != nil {
			message = uerr.Err.Error()
		}
		writeFailure(w, http.StatusInternalServerError, message)
		return
	}

	writeJSON(w, http.StatusOK, models.GenerateResponse{
		Success: true,
		Slides:  deck,
	})
}
