package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/earcherc/realfoodfinder/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Renderer struct {
	t *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

// Render executes name into a buffer first so a template failure never
// leaves a half-written page behind a 200.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"typeLabel": func(t domain.LocationType) string {
		return domain.Label(domain.LocationTypes, string(t))
	},
	"statusLabel": func(s domain.Status) string {
		return domain.Label(domain.Statuses, string(s))
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"coord": func(v float64) string {
		return fmt.Sprintf("%.4f", v)
	},
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}
