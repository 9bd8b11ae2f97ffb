package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageIndex    = "index"
	pageBuilding = "building"
	pageTour     = "tour"
	pageNotFound = "not_found"
)

// pageTemplates - по отдельному набору на страницу: каждая переопределяет блок "content"
type pageTemplates map[string]*template.Template

func parseTemplates() (pageTemplates, error) {
	pages := []string{pageIndex, pageBuilding, pageTour, pageNotFound}

	result := make(pageTemplates, len(pages))
	for _, name := range pages {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		result[name] = t
	}
	return result, nil
}

// render сначала исполняет шаблон в буфер, чтобы при ошибке не отдать половину страницы
func (p pageTemplates) render(w http.ResponseWriter, status int, name string, data interface{}) error {
	t, ok := p[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
