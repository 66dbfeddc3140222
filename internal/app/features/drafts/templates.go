// internal/app/features/drafts/templates.go
package drafts

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "drafts",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
