package slides

import (
	"fmt"
	"strings"

	"slidechat-backend/internal/models"
)

// responseShape is the exact JSON object the model is told to return. Both
// prompt variants demand it so the parser only ever has to handle one shape.
const responseShape = `{
  "slides": [
    {
      "title": "Slide Title",
      "content": ["Bullet point 1", "Bullet point 2", "Bullet point 3"],
      "layout": "title-content"
    }
  ]
}`

// BuildPrompt constructs the instruction for the generation service. With no
// existing slides it asks for a complete new deck; otherwise it restates the
// current deck inline and asks for a modification.
func BuildPrompt(message string, existing []models.Slide) string {
	if len(existing) == 0 {
		return buildCreatePrompt(message)
	}
	return buildModifyPrompt(message, existing)
}

func buildCreatePrompt(message string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("You are a PowerPoint presentation expert. Create a professional presentation about: %q\n\n", message))
	b.WriteString("Return ONLY a valid JSON object in this exact format:\n")
	b.WriteString(responseShape)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Return ONLY the JSON object, no markdown code blocks, no extra text\n")
	b.WriteString("- Create 5-8 slides for a complete presentation\n")
	b.WriteString("- First slide should be a title slide with main topic\n")
	b.WriteString("- Each slide must have title, content (array of strings), and layout\n")
	b.WriteString(`- Layout can be: "title-content", "title-only", "content-only", "two-column"` + "\n")
	b.WriteString("- Include 3-5 bullet points per slide\n")
	b.WriteString("- Make content clear, concise, and professional\n")
	b.WriteString("- Last slide should be a conclusion or summary")

	return b.String()
}

func buildModifyPrompt(message string, existing []models.Slide) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("You are a PowerPoint presentation expert. Based on the user's request: %q\n\n", message))
	b.WriteString(fmt.Sprintf("Current presentation has %d slides:\n", len(existing)))

	for i, slide := range existing {
		b.WriteString(fmt.Sprintf("\nSlide %d:\n", i+1))
		b.WriteString(fmt.Sprintf("Title: %s\n", slide.Title))
		b.WriteString(fmt.Sprintf("Content: %s\n", strings.Join(slide.Content, ", ")))
	}

	b.WriteString("\nModify the presentation according to the user's request. Return ONLY a valid JSON object in this exact format:\n")
	b.WriteString(responseShape)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Return ONLY the JSON object, no markdown code blocks, no extra text\n")
	b.WriteString("- Each slide must have title, content (array of strings), and layout\n")
	b.WriteString(`- Layout can be: "title-content", "title-only", "content-only", "two-column"` + "\n")
	b.WriteString("- Include 3-5 bullet points per slide\n")
	b.WriteString("- Make content clear, concise, and professional")

	return b.String()
}
