// internal/app/features/workbooknew/templates.go
package workbooknew

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "workbooknew",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
