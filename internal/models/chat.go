package models

import (
	"time"

	"github.com/google/uuid"
)

// Message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message is one transcript entry. Append-only; never mutated after creation.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateRequest is the payload sent to the stateless generation endpoint.
type GenerateRequest struct {
	Message        string  `json:"message"`
	ExistingSlides []Slide `json:"existingSlides"`
}

// GenerateResponse is the success reply from the generation endpoint.
type GenerateResponse struct {
	Success bool    `json:"success"`
	Slides  []Slide `json:"slides"`
}

// SendMessageRequest is the payload for a session message.
type SendMessageRequest struct {
	Message string `json:"message"`
}

// SendMessageResponse carries the assistant reply and the current deck after
// one round trip.
type SendMessageResponse struct {
	Success bool    `json:"success"`
	Message Message `json:"message"`
	Slides  []Slide `json:"slides"`
}

// SessionResponse is a point-in-time snapshot of one conversation session.
type SessionResponse struct {
	ID       uuid.UUID `json:"id"`
	Messages []Message `json:"messages"`
	Slides   []Slide   `json:"slides"`
}
