// Package templates embeds the HTML pages and serves them through gin's
// HTMLRender.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/Masterminds/sprig"
	"github.com/gin-gonic/gin/render"
)

//go:embed html
var files embed.FS

const layout = "base"

// Renderer holds one template set per page, each built from the shared
// layout and includes.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func Load() (*Renderer, error) {
	root, err := fs.Sub(files, "html")
	if err != nil {
		return nil, err
	}
	includes, err := fs.Glob(root, "includes/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	err = fs.WalkDir(root, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != ".html" || name == "base.html" || strings.HasPrefix(name, "includes/") {
			return nil
		}
		patterns := append([]string{"base.html"}, includes...)
		patterns = append(patterns, name)
		t, err := template.New(name).Funcs(sprig.FuncMap()).ParseFS(root, patterns...)
		if err != nil {
			return fmt.Errorf("templates: parse %s: %w", name, err)
		}
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// MustLoad panics when the embedded templates do not parse.
func MustLoad() *Renderer {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages["core/404.html"]
	}
	return render.HTML{Template: t, Name: layout, Data: data}
}
