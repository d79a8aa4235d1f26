package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"

	"event-storefront/web/templates/components"

	"github.com/a-h/templ"
)

//go:embed html/*.html
var files embed.FS

const (
	layoutFile   = "html/layout.html"
	partialsFile = "html/partials.html"
)

type renderer struct {
	partials *template.Template
	pages    map[string]*template.Template
}

var views = mustParse()

// mustParse builds the shared partial set and one template per page, each a
// clone of the layout and partials with the page's "content" block added.
func mustParse() *renderer {
	partials := template.Must(template.New("root").Funcs(components.Funcs()).ParseFS(files, layoutFile, partialsFile))

	names, err := files.ReadDir("html")
	if err != nil {
		panic(err)
	}

	r := &renderer{partials: partials, pages: make(map[string]*template.Template)}
	for _, entry := range names {
		file := path.Join("html", entry.Name())
		if file == layoutFile || file == partialsFile {
			continue
		}
		page := template.Must(template.Must(partials.Clone()).ParseFS(files, file))
		r.pages[entry.Name()] = page
	}
	return r
}

// page renders a full document using the layout
func page(file string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := views.pages[file]
		if !ok {
			return fmt.Errorf("unknown page template %q", file)
		}
		return t.ExecuteTemplate(w, "layout", data)
	})
}

// partial renders a named fragment for HTMX swaps
func partial(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return views.partials.ExecuteTemplate(w, name, data)
	})
}
