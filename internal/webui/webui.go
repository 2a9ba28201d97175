// Package webui serves the browser pages: the upload form and the per-student
// profile page. The pages are static shells that talk to the JSON API.
package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler renders the HTML pages.
type Handler struct {
	tmpl *template.Template
	log  logrus.FieldLogger
}

// NewHandler parses the embedded templates.
func NewHandler(log logrus.FieldLogger) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{tmpl: tmpl, log: log}, nil
}

// UploadPage serves the file upload form.
func (h *Handler) UploadPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "upload.html", nil)
}

// StudentPage serves the profile page for one student id. The page loads the
// listing filtered to that student via the listing endpoint.
func (h *Handler) StudentPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "student.html", map[string]string{
		"StudentID": chi.URLParam(r, "id"),
	})
}

func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.log.WithError(err).Errorf("render %s", name)
	}
}
