package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"slidechat-backend/internal/models"
)

// Boundary errors. Anything past the boundary is absorbed into the transcript
// as a failure notice rather than returned.
var (
	ErrNotFound     = errors.New("session not found")
	ErrBusy         = errors.New("a generation request is already in flight")
	ErrEmptyMessage = errors.New("message is required")
	ErrEmptyDeck    = errors.New("no presentation to export")
)

const failureNotice = "Sorry, I encountered an error generating the presentation. Please try again with a different prompt."

// Generator drives one message/deck round trip against the AI.
type Generator interface {
	Generate(ctx context.Context, message string, existing []models.Slide) ([]models.Slide, error)
}

// Session holds one conversation's transcript and current deck. The deck is
// wholesale-replaced on every successful round trip, never merged. busy is
// the Idle/Awaiting-Response gate: while a request is in flight, new
// submissions are rejected at the boundary.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu       sync.Mutex
	messages []models.Message
	slides   []models.Slide
	busy     bool
}

// Manager owns all live sessions. Sessions exist only in memory and die with
// the process.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*Session
	generator Generator
}

func NewManager(generator Generator) *Manager {
	return &Manager{
		sessions:  make(map[uuid.UUID]*Session),
		generator: generator,
	}
}

// Create registers a new empty session.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

func (m *Manager) get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Snapshot returns copies of the session's transcript and deck.
func (m *Manager) Snapshot(id uuid.UUID) (models.SessionResponse, error) {
	s, err := m.get(id)
	if err != nil {
		return models.SessionResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return models.SessionResponse{
		ID:       s.ID,
		Messages: append([]models.Message{}, s.messages...),
		Slides:   append([]models.Slide{}, s.slides...),
	}, nil
}

// Slides returns a copy of the session's current deck, or ErrEmptyDeck when
// there is nothing to export.
func (m *Manager) Slides(id uuid.UUID) ([]models.Slide, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.slides) == 0 {
		return nil, ErrEmptyDeck
	}
	return append([]models.Slide{}, s.slides...), nil
}

// Send runs one round trip: append the user message optimistically, call the
// generator with the current deck, and either replace the deck wholesale (on
// success with at least one slide) or leave it untouched and record a failure
// notice. Empty text, unknown sessions, and in-flight sessions are rejected
// before anything is appended.
func (m *Manager) Send(ctx context.Context, id uuid.UUID, text string) (models.SendMessageResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.SendMessageResponse{}, ErrEmptyMessage
	}

	s, err := m.get(id)
	if err != nil {
		return models.SendMessageResponse{}, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return models.SendMessageResponse{}, ErrBusy
	}
	s.busy = true
	s.messages = append(s.messages, newMessage(text, models.SenderUser))
	existing := append([]models.Slide{}, s.slides...)
	hadDeck := len(s.slides) > 0
	s.mu.Unlock()

	var deck []models.Slide
	var genErr error
	if m.generator != nil {
		deck, genErr = m.generator.Generate(ctx, text, existing)
	} else {
		genErr = errors.New("generation service not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if genErr != nil || len(deck) == 0 {
		if genErr != nil {
			log.Printf("Generation failed for session %s: %v", s.ID, genErr)
		} else {
			log.Printf("Generation returned no slides for session %s", s.ID)
		}
		assistant := newMessage(failureNotice, models.SenderAssistant)
		s.messages = append(s.messages, assistant)
		return models.SendMessageResponse{
			Success: false,
			Message: assistant,
			Slides:  append([]models.Slide{}, s.slides...),
		}, nil
	}

	s.slides = deck

	verb := "created"
	if hadDeck {
		verb = "updated"
	}
	assistant := newMessage(
		fmt.Sprintf("I've %s your presentation with %d slides. You can preview them on the right and download when ready!", verb, len(deck)),
		models.SenderAssistant,
	)
	s.messages = append(s.messages, assistant)

	return models.SendMessageResponse{
		Success: true,
		Message: assistant,
		Slides:  append([]models.Slide{}, s.slides...),
	}, nil
}

func newMessage(content, sender string) models.Message {
	return models.Message{
		ID:        uuid.New(),
		Content:   content,
		Sender:    sender,
		CreatedAt: time.Now().UTC(),
	}
}
