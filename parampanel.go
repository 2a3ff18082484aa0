// Package parampanel generates editable control panels from parameter
// declarations. Declare attributes with the params package, point a
// panel at the object, and hand the panel to a renderer: HTML, a
// prompt-based terminal walk-through, or a live bubbletea sheet.
package parampanel

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-parampanel/pkg/jsoninit"
	"github.com/goliatone/go-parampanel/pkg/panel"
	"github.com/goliatone/go-parampanel/pkg/params"
	"github.com/goliatone/go-parampanel/pkg/render"
	"github.com/goliatone/go-parampanel/pkg/renderers/html"
	"github.com/goliatone/go-parampanel/pkg/renderers/live"
	"github.com/goliatone/go-parampanel/pkg/renderers/tui"
)

// Panel aliases panel.Panel for callers that only import the root
// package.
type Panel = panel.Panel

// Descriptor aliases panel.Descriptor.
type Descriptor = panel.Descriptor

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// ThemeConfig aliases render.ThemeConfig.
type ThemeConfig = render.ThemeConfig

// Generator owns a renderer registry plus the panel and theme
// configuration shared across renders.
type Generator struct {
	registry      *render.Registry
	panelOptions  []panel.Option
	title         string
	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
	themeConfig   *render.ThemeConfig
}

// Option configures a Generator.
type Option func(*Generator)

// WithRegistry replaces the default renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		if registry != nil {
			g.registry = registry
		}
	}
}

// WithRenderer registers an extra renderer alongside the defaults.
func WithRenderer(renderer render.Renderer) Option {
	return func(g *Generator) {
		if renderer != nil {
			g.registry.MustRegister(renderer)
		}
	}
}

// WithPanelOptions forwards options to every panel the generator
// builds.
func WithPanelOptions(options ...panel.Option) Option {
	return func(g *Generator) {
		g.panelOptions = append(g.panelOptions, options...)
	}
}

// WithTitle overrides the heading of rendered panels.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithJSONInit seeds every panel target from the JSON initialization
// environment variable before rendering.
func WithJSONInit(options ...jsoninit.Option) Option {
	init := jsoninit.New(options...)
	return WithPanelOptions(panel.WithInitializer(func(target params.Parameterized) {
		init.Apply(target)
	}))
}

// WithThemeSelector resolves the named theme and variant through a
// go-theme selector on the first render.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(g *Generator) {
		g.themeSelector = selector
		g.themeName = name
		g.themeVariant = variant
	}
}

// WithThemeConfig supplies a pre-built theme configuration directly.
func WithThemeConfig(cfg *render.ThemeConfig) Option {
	return func(g *Generator) {
		g.themeConfig = cfg
	}
}

// New constructs a Generator with the html, tui, and live renderers
// registered.
func New(options ...Option) (*Generator, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("parampanel: html renderer: %w", err)
	}
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(tui.New())
	registry.MustRegister(live.New())

	g := &Generator{registry: registry}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// Panel builds a panel over the target using the generator's panel
// options.
func (g *Generator) Panel(target params.Parameterized) (*panel.Panel, error) {
	return panel.New(target, g.panelOptions...)
}

// Render builds a panel over the target and renders it with the named
// renderer.
func (g *Generator) Render(ctx context.Context, target params.Parameterized, rendererName string) ([]byte, error) {
	p, err := g.Panel(target)
	if err != nil {
		return nil, err
	}
	return g.RenderPanel(ctx, p, rendererName)
}

// RenderPanel renders an existing panel with the named renderer.
func (g *Generator) RenderPanel(ctx context.Context, p *panel.Panel, rendererName string) ([]byte, error) {
	renderer, err := g.registry.Get(rendererName)
	if err != nil {
		return nil, err
	}

	themeCfg, err := g.resolveTheme()
	if err != nil {
		return nil, err
	}

	return renderer.Render(ctx, p, render.RenderOptions{
		Title: g.title,
		Theme: themeCfg,
	})
}

// Renderers lists the registered renderer names.
func (g *Generator) Renderers() []string {
	return g.registry.List()
}

// resolveTheme turns the configured selector into a renderer theme
// configuration, caching the result.
func (g *Generator) resolveTheme() (*render.ThemeConfig, error) {
	if g.themeConfig != nil {
		return g.themeConfig, nil
	}
	if g.themeSelector == nil {
		return nil, nil
	}

	selection, err := g.themeSelector.Select(g.themeName, g.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("parampanel: select theme %s: %w", g.themeName, err)
	}
	if selection == nil {
		return nil, errors.New("parampanel: theme selector returned no selection")
	}

	cfg := themeConfigFromSelection(selection)
	g.themeConfig = cfg
	return cfg, nil
}

// Generate is the one-shot entry point: build a generator, a panel
// over the target, and render with the named renderer.
func Generate(ctx context.Context, target params.Parameterized, rendererName string, options ...Option) ([]byte, error) {
	g, err := New(options...)
	if err != nil {
		return nil, err
	}
	return g.Render(ctx, target, rendererName)
}
