package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layout = "templates/base.html"

func parsePages() (map[string]*template.Template, error) {
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))

	for _, f := range files {
		if f == layout {
			continue
		}

		ts, err := template.New(path.Base(f)).ParseFS(templatesFS, layout, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s error: %w", f, err)
		}

		pages[path.Base(f)] = ts
	}

	return pages, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data *pageData) {
	if data == nil {
		data = &pageData{}
	}

	ts, ok := s.pages[page]
	if !ok {
		s.serverError(w, r, fmt.Errorf("page %s does not exist", page))

		return
	}

	data.Identity = s.identity(r)
	data.Flashes = s.popFlashes(w, r)

	buf := new(bytes.Buffer)

	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		s.lg.Errorf("render %s error: %s", page, err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck
}
