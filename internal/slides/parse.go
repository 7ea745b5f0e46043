package slides

import (
	"encoding/json"
	"fmt"
	"strings"

	"slidechat-backend/internal/models"
)

// ParseError means the AI reply could not be recovered as the required
// {"slides":[...]} shape. Raw carries the cleaned-up text that failed.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse AI response: %v", e.Err)
	}
	return "parse AI response: invalid slides structure"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse extracts and normalizes the slide list embedded in a raw AI reply.
// The model is instructed to return bare JSON, but replies still show up
// wrapped in code fences or surrounded by prose; both are tolerated. Once the
// JSON parses with an array-valued "slides" field, Parse cannot fail: every
// element is normalized into a well-formed Slide however malformed it is.
func Parse(raw string) ([]models.Slide, error) {
	text := Clean(raw)

	var payload struct {
		Slides json.RawMessage `json:"slides"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	// A missing field leaves Slides nil; an explicit JSON null decodes into a
	// nil elements slice without error. Both mean there is no slides array.
	var elements []json.RawMessage
	if payload.Slides == nil || string(payload.Slides) == "null" || json.Unmarshal(payload.Slides, &elements) != nil {
		return nil, &ParseError{Raw: text}
	}

	result := make([]models.Slide, len(elements))
	for i, elem := range elements {
		result[i] = Normalize(decodeSlide(elem))
	}
	return result, nil
}

// Clean strips code-fence markers and cuts the text down to the span between
// the first '{' and the last '}', discarding any commentary around it.
func Clean(raw string) string {
	text := strings.ReplaceAll(raw, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last != -1 && last > first {
		text = text[first : last+1]
	}
	return text
}

// Normalize fills in defaults so the slide satisfies the session invariant:
// non-empty title, non-nil content, one of the four layouts. Applying it to
// an already-normalized slide changes nothing.
func Normalize(s models.Slide) models.Slide {
	if strings.TrimSpace(s.Title) == "" {
		s.Title = models.DefaultTitle
	}
	if s.Content == nil {
		s.Content = []string{}
	}
	if !models.ValidLayout(s.Layout) {
		s.Layout = models.DefaultLayout
	}
	return s
}

// decodeSlide pulls title/content/layout out of one slides element without
// trusting any field's type. A non-object element decodes to the zero slide
// and picks up all defaults in Normalize.
func decodeSlide(elem json.RawMessage) models.Slide {
	var obj struct {
		Title   any `json:"title"`
		Content any `json:"content"`
		Layout  any `json:"layout"`
	}
	json.Unmarshal(elem, &obj)

	var s models.Slide

	if title, ok := obj.Title.(string); ok {
		s.Title = title
	} else if obj.Title != nil {
		s.Title = fmt.Sprint(obj.Title)
	}

	switch content := obj.Content.(type) {
	case nil:
		s.Content = []string{}
	case []any:
		s.Content = make([]string, len(content))
		for i, item := range content {
			if str, ok := item.(string); ok {
				s.Content[i] = str
			} else {
				s.Content[i] = fmt.Sprint(item)
			}
		}
	case string:
		s.Content = []string{content}
	default:
		// Bare scalar: wrap its string form as the single bullet.
		s.Content = []string{fmt.Sprint(content)}
	}

	if layout, ok := obj.Layout.(string); ok {
		s.Layout = layout
	}

	return s
}
