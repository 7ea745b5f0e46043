package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"slidechat-backend/internal/handlers"
	"slidechat-backend/internal/services"
	"slidechat-backend/internal/session"
)

type stubTextGenerator struct {
	reply string
	calls int
}

func (g *stubTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.calls++
	return g.reply, nil
}

func newTestRouter(gen *stubTextGenerator) http.Handler {
	generation := services.NewGenerationService(gen, nil)
	sessions := session.NewManager(generation)
	return New(
		handlers.NewChatHandler(generation),
		handlers.NewSessionHandler(sessions),
		"http://localhost:3000",
	)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(&stubTextGenerator{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != `{"status":"ok"}` {
		t.Errorf("Unexpected health body %q", rr.Body.String())
	}
}

// Non-JSON prose with no braces must surface as a 500 with success:false and
// never as a success with an empty deck.
func TestRouter_ChatUnparseableReply(t *testing.T) {
	r := newTestRouter(&stubTextGenerator{reply: "Plain prose, no JSON anywhere."})

	body := bytes.NewReader([]byte(`{"message":"Create a presentation about solar energy","existingSlides":null}`))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}
	var resp struct {
		Success bool `json:"success"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Success {
		t.Error("Expected success:false")
	}
}

func TestRouter_ChatMissingMessage(t *testing.T) {
	gen := &stubTextGenerator{reply: `{"slides":[{"title":"A","content":["x"],"layout":"title-content"}]}`}
	r := newTestRouter(gen)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}
	var resp map[string]string
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp["error"] != "Message is required" {
		t.Errorf("Expected {error:\"Message is required\"}, got %v", resp)
	}
	if gen.calls != 0 {
		t.Error("Expected no collaborator call before validation")
	}
}

func TestRouter_SessionLifecycle(t *testing.T) {
	gen := &stubTextGenerator{reply: `{"slides":[{"title":"A","content":["x"],"layout":"title-content"}]}`}
	r := newTestRouter(gen)

	// Create a session.
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Create: expected 201, got %d", rr.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	json.NewDecoder(rr.Body).Decode(&created)

	// Send a message.
	body := bytes.NewReader([]byte(`{"message":"one slide please"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+created.ID+"/messages", body)
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Send: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// Export the deck.
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+created.ID+"/export", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Export: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if b := rr.Body.Bytes(); len(b) < 4 || b[0] != 'P' || b[1] != 'K' {
		t.Error("Export: expected a zip (pptx) payload")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(&stubTextGenerator{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("Expected frontend origin allowed, got %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}
