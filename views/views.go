// Package views embeds the HTML templates rendered by the Fiber html engine.
package views

import (
	"embed"
	"net/http"
	"strings"

	"order-tracker/models"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html partials/*.html
var files embed.FS

// Engine builds the template engine with the helpers the pages use.
func Engine(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.Reload(reload)
	engine.AddFunc("field", func(o models.Order, name string) string { return o.Value(name) })
	engine.AddFunc("missing", models.IsMissing)
	engine.AddFunc("lines", func(s string) []string { return strings.Split(s, "\n") })
	return engine
}
