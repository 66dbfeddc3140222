// internal/app/features/workbookview/templates.go
package workbookview

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "workbookview",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
