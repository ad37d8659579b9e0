// Package render wraps html/template for the server-rendered views. The
// presentation itself is deliberately thin; controllers hand it a Page and
// never touch templates directly.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
)

// Page is the data envelope every view receives. Username and the one-shot
// flash values come from the session; Data carries the view-specific model.
type Page struct {
	Title    string
	Username string
	Error    string
	Message  string
	Data     interface{}
}

// Renderer renders named views inside the shared layout.
type Renderer struct {
	views map[string]*template.Template
}

// New parses the layout plus every view under dir/views. Each view is
// addressed by its file base name, e.g. "students_index.html".
func New(dir string) (*Renderer, error) {
	layout := filepath.Join(dir, "layout.html")

	pages, err := filepath.Glob(filepath.Join(dir, "views", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("render: failed to glob views: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("render: no views found under %s", dir)
	}

	views := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, fmt.Errorf("render: failed to parse %s: %w", page, err)
		}
		views[filepath.Base(page)] = t
	}

	return &Renderer{views: views}, nil
}

// Render writes the named view with the given status code. The view is
// rendered to a buffer first so a template error can still become a clean
// 500 instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, view string, page Page) error {
	t, ok := r.views[view]
	if !ok {
		return fmt.Errorf("render: unknown view %q", view)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render: failed to execute %s: %w", view, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
