package models

// Slide layout values understood by the renderer and the exporter.
const (
	LayoutTitleContent = "title-content"
	LayoutTitleOnly    = "title-only"
	LayoutContentOnly  = "content-only"
	LayoutTwoColumn    = "two-column"
)

// DefaultLayout is assigned when the AI omits the layout or invents one.
const DefaultLayout = LayoutTitleContent

// DefaultTitle is assigned when the AI omits a slide title.
const DefaultTitle = "Untitled Slide"

// Slide is one normalized unit of presentation content. Every Slide held in a
// session has a non-empty title, array content, and one of the four layouts.
type Slide struct {
	Title        string   `json:"title"`
	Content      []string `json:"content"`
	Layout       string   `json:"layout"`
	PreviewImage *string  `json:"previewImage,omitempty"`
}

// ValidLayout reports whether layout is one of the four known values.
func ValidLayout(layout string) bool {
	switch layout {
	case LayoutTitleContent, LayoutTitleOnly, LayoutContentOnly, LayoutTwoColumn:
		return true
	}
	return false
}
