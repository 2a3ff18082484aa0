// Package html renders the assembled panel as a static HTML property
// sheet. Attribute docs may carry user-supplied markup; they are
// sanitized with bluemonday before being embedded.
package html

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-parampanel/pkg/panel"
	"github.com/goliatone/go-parampanel/pkg/render"
	"github.com/goliatone/go-parampanel/pkg/render/template"
	"github.com/goliatone/go-parampanel/pkg/render/template/gotemplate"
)

const templateName = "templates/page"

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer template.TemplateRenderer
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplateRenderer injects a pre-built template engine, bypassing
// the default pongo2 engine.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizerPolicy overrides the bluemonday policy applied to
// attribute doc strings.
func WithSanitizerPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer implements render.Renderer for static HTML output.
type Renderer struct {
	templates template.TemplateRenderer
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs an HTML renderer backed by the embedded templates
// unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{
		templateFS: embeddedTemplates,
		policy:     bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html: build template engine: %w", err)
		}
		engine = built
	}

	return &Renderer{templates: engine, policy: cfg.policy}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "html" }

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render assembles the panel and produces the property-sheet markup.
func (r *Renderer) Render(ctx context.Context, p *panel.Panel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("html: panel is required")
	}

	descriptors, err := p.Build()
	if err != nil {
		return nil, fmt.Errorf("html: build panel: %w", err)
	}

	cfg := p.Config()
	width := cfg.Width
	if opts.Width > 0 {
		width = opts.Width
	}

	heading := ""
	widgets := make([]map[string]any, 0, len(descriptors))
	for _, desc := range descriptors {
		if desc.Type == panel.WidgetStaticText {
			heading = fmt.Sprintf("%v", desc.Value)
			continue
		}
		widgets = append(widgets, r.widgetView(desc))
	}
	if opts.Title != "" {
		heading = opts.Title
	}

	data := map[string]any{
		"width":       width,
		"heading":     heading,
		"show_labels": cfg.ShowLabels,
		"widgets":     widgets,
	}
	if opts.Theme != nil {
		data["css_vars_style"] = cssVarsStyle(opts.Theme.CSSVars)
		if opts.Theme.AssetURL != nil {
			data["stylesheet"] = opts.Theme.AssetURL("html.stylesheet")
		}
	}

	out, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("html: render page: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) widgetView(desc panel.Descriptor) map[string]any {
	view := map[string]any{
		"id":    "parampanel-" + desc.Name,
		"name":  desc.Name,
		"type":  string(desc.Type),
		"label": desc.Label,
	}
	if desc.Doc != "" {
		view["doc"] = r.policy.Sanitize(desc.Doc)
	}
	if desc.Start != nil {
		view["start"] = formatNumber(*desc.Start)
	}
	if desc.End != nil {
		view["end"] = formatNumber(*desc.End)
	}

	switch desc.Type {
	case panel.WidgetCheckbox:
		checked, _ := desc.Value.(bool)
		view["checked"] = checked
	case panel.WidgetSelect:
		current, _ := desc.Value.(string)
		view["options"] = optionViews(desc.Options, func(label string) bool {
			return label == current
		})
	case panel.WidgetMultiSelect:
		selected := map[string]bool{}
		if labels, ok := desc.Value.([]string); ok {
			for _, label := range labels {
				selected[label] = true
			}
		}
		view["options"] = optionViews(desc.Options, func(label string) bool {
			return selected[label]
		})
	case panel.WidgetRangeSlider:
		if pair, ok := desc.Value.([2]float64); ok {
			view["low"] = formatNumber(pair[0])
			view["high"] = formatNumber(pair[1])
		}
	case panel.WidgetDatePicker:
		if date, ok := desc.Value.(time.Time); ok {
			view["value"] = date.Format("2006-01-02")
		}
	default:
		view["value"] = literalValue(desc.Value)
	}

	return view
}

func optionViews(choices []panel.Choice, selected func(label string) bool) []map[string]any {
	views := make([]map[string]any, 0, len(choices))
	for _, choice := range choices {
		views = append(views, map[string]any{
			"label":    choice.Label,
			"value":    choice.Value,
			"selected": selected(choice.Label),
		})
	}
	return views
}

// literalValue keeps strings as-is and JSON-encodes everything else so
// the text input round-trips structured values.
func literalValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(raw)
}

func formatNumber(f float64) string {
	out := fmt.Sprintf("%g", f)
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(vars[key])
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}
