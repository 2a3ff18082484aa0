package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can
// reuse or extend the built-in markup.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
