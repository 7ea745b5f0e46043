package slides

import (
	"errors"
	"reflect"
	"testing"

	"slidechat-backend/internal/models"
)

func TestParse_WellFormed(t *testing.T) {
	raw := `{"slides":[
		{"title":"Intro","content":["a","b"],"layout":"title-only"},
		{"title":"Body","content":["c"],"layout":"title-content"}
	]}`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(got))
	}
	if got[0].Title != "Intro" || got[0].Layout != models.LayoutTitleOnly {
		t.Errorf("Unexpected first slide: %+v", got[0])
	}
	if !reflect.DeepEqual(got[1].Content, []string{"c"}) {
		t.Errorf("Unexpected second slide content: %v", got[1].Content)
	}
}

func TestParse_CodeFencesAndProse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n{\"slides\":[{\"title\":\"A\",\"content\":[\"x\"],\"layout\":\"title-content\"}]}\n```"},
		{"bare fence", "```\n{\"slides\":[{\"title\":\"A\",\"content\":[\"x\"],\"layout\":\"title-content\"}]}\n```"},
		{"leading prose", "Sure, here is your presentation:\n{\"slides\":[{\"title\":\"A\",\"content\":[\"x\"],\"layout\":\"title-content\"}]}"},
		{"trailing prose", "{\"slides\":[{\"title\":\"A\",\"content\":[\"x\"],\"layout\":\"title-content\"}]}\nLet me know if you need changes!"},
		{"prose both sides", "Of course!\n{\"slides\":[{\"title\":\"A\",\"content\":[\"x\"],\"layout\":\"title-content\"}]}\nEnjoy."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("Expected 1 slide, got %d", len(got))
			}
			if got[0].Title != "A" {
				t.Errorf("Expected title 'A', got %q", got[0].Title)
			}
		})
	}
}

func TestParse_StringContentWrapped(t *testing.T) {
	raw := " ```json\n{\"slides\":[{\"title\":\"A\",\"content\":\"one bullet\"}]}\n``` "

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []models.Slide{{Title: "A", Content: []string{"one bullet"}, Layout: models.LayoutTitleContent}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no braces", "I'm sorry, I cannot create that presentation."},
		{"invalid json in span", "{this is not json}"},
		{"missing slides field", `{"deck":[]}`},
		{"null slides field", `{"slides":null}`},
		{"slides not an array", `{"slides":"nope"}`},
		{"top level array", `[{"title":"A"}]`},
		{"empty text", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.raw)
			if err == nil {
				t.Fatal("Expected ParseError, got nil")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParse_MalformedElementsStillNormalize(t *testing.T) {
	raw := `{"slides":[
		{"title":"","content":null},
		{"content":42,"layout":"fancy"},
		"not an object",
		{"title":7,"content":[1,"two",true]}
	]}`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Expected 4 slides, got %d", len(got))
	}

	for i, s := range got {
		if s.Title == "" {
			t.Errorf("Slide %d has empty title", i)
		}
		if s.Content == nil {
			t.Errorf("Slide %d has nil content", i)
		}
		if !models.ValidLayout(s.Layout) {
			t.Errorf("Slide %d has invalid layout %q", i, s.Layout)
		}
	}

	if got[1].Content[0] != "42" {
		t.Errorf("Expected scalar content wrapped as \"42\", got %v", got[1].Content)
	}
	if got[1].Layout != models.DefaultLayout {
		t.Errorf("Expected unknown layout replaced with default, got %q", got[1].Layout)
	}
	if got[3].Title != "7" {
		t.Errorf("Expected numeric title stringified to \"7\", got %q", got[3].Title)
	}
	if !reflect.DeepEqual(got[3].Content, []string{"1", "two", "true"}) {
		t.Errorf("Expected mixed array stringified, got %v", got[3].Content)
	}
}

func TestParse_EmptySlidesArray(t *testing.T) {
	got, err := Parse(`{"slides":[]}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected 0 slides, got %d", len(got))
	}
}

func TestNormalize_Defaults(t *testing.T) {
	tests := []struct {
		name  string
		input models.Slide
		want  models.Slide
	}{
		{
			"empty slide",
			models.Slide{},
			models.Slide{Title: models.DefaultTitle, Content: []string{}, Layout: models.DefaultLayout},
		},
		{
			"whitespace title",
			models.Slide{Title: "   ", Content: []string{"x"}, Layout: models.LayoutTwoColumn},
			models.Slide{Title: models.DefaultTitle, Content: []string{"x"}, Layout: models.LayoutTwoColumn},
		},
		{
			"unknown layout",
			models.Slide{Title: "T", Content: []string{"x"}, Layout: "grid"},
			models.Slide{Title: "T", Content: []string{"x"}, Layout: models.DefaultLayout},
		},
		{
			"already normalized",
			models.Slide{Title: "T", Content: []string{"x"}, Layout: models.LayoutContentOnly},
			models.Slide{Title: "T", Content: []string{"x"}, Layout: models.LayoutContentOnly},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []models.Slide{
		{},
		{Title: "T"},
		{Title: "T", Content: []string{"a", "b"}, Layout: "weird"},
		{Title: "T", Content: []string{"a"}, Layout: models.LayoutTitleOnly},
	}

	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Normalize not idempotent: %+v != %+v", once, twice)
		}
	}
}

func TestClean_BraceSpan(t *testing.T) {
	got := Clean("noise before {\"a\":1} noise after")
	if got != `{"a":1}` {
		t.Errorf("Expected brace span, got %q", got)
	}
}
