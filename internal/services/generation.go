package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"slidechat-backend/internal/models"
	"slidechat-backend/internal/slides"
)

// TextGenerator is the narrow surface of the generation collaborator: submit
// one prompt, receive free-form text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// PreviewRenderer produces an encoded raster image for one slide, or fails.
type PreviewRenderer interface {
	RenderSlide(ctx context.Context, slide models.Slide, index, total int) (string, error)
}

// UpstreamError wraps a failure of the generation collaborator itself, as
// opposed to an unparseable reply.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation service error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// GenerationService drives one prompt/reply round trip: build the prompt,
// call the generator, validate the reply, and optionally render previews.
type GenerationService struct {
	generator TextGenerator
	renderer  PreviewRenderer // nil disables previews
}

func NewGenerationService(generator TextGenerator, renderer PreviewRenderer) *GenerationService {
	return &GenerationService{
		generator: generator,
		renderer:  renderer,
	}
}

// Generate returns the normalized slide list for one user message. The
// returned list may be empty; callers decide whether that counts as failure.
// Errors are either *UpstreamError (collaborator failed) or
// *slides.ParseError (reply not recoverable as the slides JSON shape).
func (s *GenerationService) Generate(ctx context.Context, message string, existing []models.Slide) ([]models.Slide, error) {
	prompt := slides.BuildPrompt(message, existing)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	log.Printf("Raw AI response: %.200s", raw)

	deck, err := slides.Parse(raw)
	if err != nil {
		log.Printf("Failed to parse AI response: %v (text: %.500s)", err, raw)
		return nil, err
	}

	if s.renderer != nil && len(deck) > 0 {
		s.renderPreviews(ctx, deck)
	}

	return deck, nil
}

// renderPreviews fans out one rendering job per slide and joins when every
// job has settled. A failed job degrades that slide's preview to absent; it
// never fails the batch. Jobs share no mutable state: each writes only its
// own slide's PreviewImage.
func (s *GenerationService) renderPreviews(ctx context.Context, deck []models.Slide) {
	var wg sync.WaitGroup

	for i := range deck {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			image, err := s.renderer.RenderSlide(ctx, deck[i], i, len(deck))
			if err != nil {
				log.Printf("Preview render failed for slide %d: %v", i+1, err)
				return
			}
			deck[i].PreviewImage = &image
		}(i)
	}

	wg.Wait()
}
