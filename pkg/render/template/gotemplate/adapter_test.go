package gotemplate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestNew_RequiresTemplateSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without a template source")
	}
}

func TestRenderTemplate_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"greeting.tpl": {Data: []byte("Hello {{ who }}!")},
	}

	engine, err := New(WithFS(fsys))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("greeting", map[string]any{"who": "panel"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello panel!" {
		t.Fatalf("want %q, got %q", "Hello panel!", got)
	}
}

func TestRenderString_Inline(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString("{{ count }} widgets", map[string]any{"count": 3})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "3 widgets" {
		t.Fatalf("want %q, got %q", "3 widgets", got)
	}
}

func TestGlobalContext_AvailableToTemplates(t *testing.T) {
	engine, err := New(
		WithFS(fstest.MapFS{}),
		WithGlobalData(map[string]any{"product": "parampanel"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString("{{ product }}", nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "parampanel" {
		t.Fatalf("want global value, got %q", got)
	}
}

func TestRenderTemplate_MissingTemplate(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("missing", nil); err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected load error naming the template, got %v", err)
	}
}
