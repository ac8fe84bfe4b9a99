package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/countyhub/go-minisite/internal/gallery"
	"github.com/countyhub/go-minisite/internal/navigation"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("minisite").Funcs(template.FuncMap{
	"accent": func(color string) template.CSS {
		if !ValidAccent(color) {
			return template.CSS(DefaultAccentColor)
		}
		return template.CSS(color)
	},
}).ParseFS(templateFS, "templates/*.html"))

// PageView is everything the mini-site page layout displays.
type PageView struct {
	Title           string
	MetaDescription string
	View            View
	Tabs            []navigation.Tab
	ActiveURL       string
	Gallery         []gallery.Item
	IndexURL        string
}

type NotFoundView struct {
	Message  string
	IndexURL string
}

// IndexView lists listings grouped by town.
type IndexView struct {
	Title string
	Towns []IndexTown
}

type IndexTown struct {
	Name     string
	Listings []IndexEntry
}

type IndexEntry struct {
	Name string
	Kind string
	URL  string
}

// HTML renders the blocks of view as an HTML fragment.
func (r *Renderer) HTML(view View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "blocks", view); err != nil {
		return "", fmt.Errorf("render: blocks: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) WritePage(w io.Writer, page PageView) error {
	return r.execute(w, "page", page)
}

func (r *Renderer) WriteNotFound(w io.Writer, view NotFoundView) error {
	if view.Message == "" {
		view.Message = "We could not find that listing."
	}
	if view.IndexURL == "" {
		view.IndexURL = "/"
	}
	return r.execute(w, "notfound", view)
}

func (r *Renderer) WriteIndex(w io.Writer, view IndexView) error {
	if view.Title == "" {
		view.Title = "Directory"
	}
	return r.execute(w, "index", view)
}

// execute renders into a buffer first so a template error never leaves a
// half-written response.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render: %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
