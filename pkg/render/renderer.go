package render

import (
	"context"

	"github.com/goliatone/go-parampanel/pkg/panel"
)

// Renderer converts an assembled panel into a byte representation
// (HTML, serialized edit results, etc.). Interactive renderers drive
// their session inside Render and push edits back through the panel's
// change relay before returning.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, p *panel.Panel, options RenderOptions) ([]byte, error)
}

// RenderOptions carries per-request presentation hints. All fields are
// optional; zero values defer to the panel configuration.
type RenderOptions struct {
	// Title overrides the heading text.
	Title string
	// Width overrides the configured container width.
	Width int
	// Theme supplies resolved theme data for renderers that style
	// their output.
	Theme *ThemeConfig
}

// ThemeConfig is the renderer-facing projection of a theme selection:
// resolved tokens, derived CSS custom properties, template partials,
// and an asset URL resolver.
type ThemeConfig struct {
	Theme    string
	Variant  string
	Partials map[string]string
	Tokens   map[string]string
	CSSVars  map[string]string
	AssetURL func(key string) string
}
