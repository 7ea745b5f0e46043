package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slidechat-backend/internal/models"
	"slidechat-backend/internal/services"
)

type stubTextGenerator struct {
	reply string
	err   error
	calls int
}

func (g *stubTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func sixSlideJSON() string {
	var b strings.Builder
	b.WriteString(`{"slides":[`)
	for i := 0; i < 6; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(fmt.Sprintf(`{"title":"Slide %d","content":["a","b","c"],"layout":"title-content"}`, i+1))
	}
	b.WriteString("]}")
	return b.String()
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Generate(rr, req)
	return rr
}

func TestChat_NewPresentation(t *testing.T) {
	gen := &stubTextGenerator{reply: sixSlideJSON()}
	h := NewChatHandler(services.NewGenerationService(gen, nil))

	rr := postChat(t, h, `{"message":"Create a presentation about solar energy","existingSlides":null}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.GenerateResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("Expected success:true")
	}
	if len(resp.Slides) != 6 {
		t.Fatalf("Expected 6 slides, got %d", len(resp.Slides))
	}
	for i, s := range resp.Slides {
		if s.Title == "" {
			t.Errorf("Slide %d has empty title", i)
		}
		if len(s.Content) == 0 {
			t.Errorf("Slide %d has empty content", i)
		}
	}
}

func TestChat_MissingMessage(t *testing.T) {
	gen := &stubTextGenerator{reply: sixSlideJSON()}
	h := NewChatHandler(services.NewGenerationService(gen, nil))

	rr := postChat(t, h, `{"existingSlides":null}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}

	var resp map[string]string
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp["error"] != "Message is required" {
		t.Errorf("Expected {error:\"Message is required\"}, got %v", resp)
	}
	if gen.calls != 0 {
		t.Error("Expected no collaborator call for missing message")
	}
}

func TestChat_MissingAPIKey(t *testing.T) {
	h := NewChatHandler(nil)

	rr := postChat(t, h, `{"message":"anything"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}

	var resp map[string]string
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp["error"] != "API key not configured on server" {
		t.Errorf("Expected configuration error, got %v", resp)
	}
}

func TestChat_UnparseableReply(t *testing.T) {
	gen := &stubTextGenerator{reply: "I cannot help with that, sorry."}
	h := NewChatHandler(services.NewGenerationService(gen, nil))

	rr := postChat(t, h, `{"message":"make slides"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Success {
		t.Error("Expected success:false")
	}
	if resp.Error != parseFailureMessage {
		t.Errorf("Expected parse failure message, got %q", resp.Error)
	}
}

func TestChat_UpstreamFailureSurfacesCause(t *testing.T) {
	gen := &stubTextGenerator{err: errors.New("quota exceeded")}
	h := NewChatHandler(services.NewGenerationService(gen, nil))

	rr := postChat(t, h, `{"message":"make slides"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Success {
		t.Error("Expected success:false")
	}
	if !strings.Contains(resp.Error, "quota exceeded") {
		t.Errorf("Expected underlying cause in error, got %q", resp.Error)
	}
}

func TestChat_InvalidBody(t *testing.T) {
	h := NewChatHandler(services.NewGenerationService(&stubTextGenerator{}, nil))

	rr := postChat(t, h, `{not json`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}
}
