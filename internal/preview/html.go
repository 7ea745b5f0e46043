package preview

import (
	"html/template"
	"strings"

	"slidechat-backend/internal/models"
)

// slideTemplate mirrors the exported deck's styling: white background, Arial,
// dark heading, bulleted body. The layout class drives which blocks show.
var slideTemplate = template.Must(template.New("slide").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  html, body { margin: 0; padding: 0; width: 1280px; height: 720px; background: #FFFFFF; font-family: Arial, sans-serif; }
  .slide { box-sizing: border-box; width: 100%; height: 100%; padding: 48px 64px; position: relative; }
  h1 { margin: 0 0 32px 0; font-size: 42px; font-weight: bold; color: #2C3E50; }
  ul { margin: 0; padding-left: 28px; font-size: 24px; color: #34495E; line-height: 1.6; }
  li { margin-bottom: 12px; }
  .layout-title-only { display: flex; align-items: center; justify-content: center; }
  .layout-title-only h1 { margin: 0; text-align: center; }
  .layout-title-only ul { display: none; }
  .layout-content-only h1 { display: none; }
  .layout-two-column ul { columns: 2; column-gap: 48px; }
  .page { position: absolute; bottom: 24px; right: 40px; font-size: 16px; color: #95A5A6; }
</style>
</head>
<body>
<div class="slide layout-{{.Layout}}">
  <h1>{{.Title}}</h1>
  <ul>
  {{- range .Content}}
    <li>{{.}}</li>
  {{- end}}
  </ul>
  <div class="page">{{.Page}} / {{.Total}}</div>
</div>
</body>
</html>`))

func slideHTML(slide models.Slide, index, total int) (string, error) {
	data := struct {
		Title   string
		Content []string
		Layout  string
		Page    int
		Total   int
	}{
		Title:   slide.Title,
		Content: slide.Content,
		Layout:  slide.Layout,
		Page:    index + 1,
		Total:   total,
	}

	var b strings.Builder
	if err := slideTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
