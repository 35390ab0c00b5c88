package preact

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded page shell.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
