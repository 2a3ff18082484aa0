package parampanel

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-parampanel/pkg/jsoninit"
	"github.com/goliatone/go-parampanel/pkg/params"
)

func synthTarget(t *testing.T) *params.Object {
	t.Helper()
	return params.MustNewObject("Synth",
		params.Boolean{Meta: params.Meta{Name: "enabled"}, Default: true},
		params.Number{Meta: params.Meta{Name: "gain"}, Default: 0.5, Bounds: &params.Bounds{Low: 0, High: 1}},
	)
}

func TestNew_RegistersDefaultRenderers(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	names := g.Renderers()
	for _, want := range []string{"html", "live", "tui"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("renderer %q not registered, got %v", want, names)
		}
	}
}

func TestGenerate_HTML(t *testing.T) {
	out, err := Generate(context.Background(), synthTarget(t), "html")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	page := string(out)
	if !strings.Contains(page, "Synth") {
		t.Fatalf("page should carry the object heading:\n%s", page)
	}
	if !strings.Contains(page, "checkbox") {
		t.Fatalf("boolean attribute should render as a checkbox:\n%s", page)
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	if _, err := Generate(context.Background(), synthTarget(t), "carrier-pigeon"); err == nil {
		t.Fatalf("unknown renderer should fail")
	}
}

func TestWithTitle_OverridesHeading(t *testing.T) {
	out, err := Generate(context.Background(), synthTarget(t), "html", WithTitle("Console"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "Console") {
		t.Fatalf("title override should reach the renderer")
	}
}

func TestWithJSONInit_SeedsTargetBeforeRender(t *testing.T) {
	environ := func(key string) (string, bool) {
		if key == jsoninit.DefaultVarname {
			return `{"Synth": {"gain": 0.9}}`, true
		}
		return "", false
	}

	target := synthTarget(t)
	_, err := Generate(context.Background(), target, "html",
		WithJSONInit(jsoninit.WithEnviron(environ)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if got, _ := target.Get("gain"); got != 0.9 {
		t.Fatalf("gain: want 0.9 from bulk init, got %v", got)
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	name      string
	variant   string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.name = name
	s.variant = variant
	return s.selection, s.err
}

func TestRender_WithThemeSelector(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456"},
		},
	}}

	out, err := Generate(context.Background(), synthTarget(t), "html",
		WithThemeSelector(selector, "acme", "dark"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if selector.name != "acme" || selector.variant != "dark" {
		t.Fatalf("selector should receive the configured theme, got (%s, %s)", selector.name, selector.variant)
	}
	if !strings.Contains(string(out), "--brand: #123456") {
		t.Fatalf("theme tokens should surface as CSS custom properties:\n%s", out)
	}
}

func TestThemeConfigFromSelection_MergesVariant(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456"},
			Templates: map[string]string{
				"panel.page": "themes/acme/page.tmpl",
			},
			Assets: theme.Assets{
				Prefix: "/assets/themes/acme",
				Files: map[string]string{
					"html.stylesheet": "theme.css",
				},
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{"brand": "#654321"},
					Assets: theme.Assets{
						Files: map[string]string{
							"html.stylesheet": "theme.dark.css",
						},
					},
				},
			},
		},
	}

	cfg := themeConfigFromSelection(selection)

	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant tokens should win, got %s", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars should derive from merged tokens, got %s", cfg.CSSVars["--brand"])
	}
	if cfg.Partials["panel.page"] != "themes/acme/page.tmpl" {
		t.Fatalf("base templates should carry over, got %s", cfg.Partials["panel.page"])
	}
	if got := cfg.AssetURL("html.stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("variant assets should win under the manifest prefix, got %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset keys should resolve empty, got %s", got)
	}
}

func TestThemeConfigFromSelection_NoManifest(t *testing.T) {
	cfg := themeConfigFromSelection(&theme.Selection{Theme: "bare"})
	if cfg.Theme != "bare" || cfg.Tokens != nil {
		t.Fatalf("selection without manifest should produce an empty config: %+v", cfg)
	}
}
