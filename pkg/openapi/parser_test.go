package openapi

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-parampanel/pkg/params"
)

const synthDocument = `
openapi: 3.0.3
info:
  title: Synth Settings
  version: 1.0.0
paths: {}
components:
  schemas:
    Synth:
      type: object
      properties:
        enabled:
          type: boolean
          default: true
          x-panel-precedence: 1
        gain:
          type: number
          minimum: 0
          maximum: 10
          default: 0.5
          x-panel-soft-bounds: [0, 1]
          description: Output gain.
        voices:
          type: integer
          minimum: 1
          maximum: 16
          default: 4
        wave:
          type: string
          enum: [sine, square, saw]
          default: sine
        tags:
          type: array
          items:
            type: string
            enum: [lead, pad, bass]
        window:
          type: array
          minItems: 2
          maxItems: 2
          items:
            type: number
          default: [0.1, 0.9]
        released:
          type: string
          format: date
          default: "2024-06-01"
        serial:
          type: string
          readOnly: true
    NotAnObject:
      type: string
`

func TestComponents_ConvertsPropertySchemas(t *testing.T) {
	parser := NewParser()

	components, err := parser.Components(context.Background(), []byte(synthDocument))
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	specs, ok := components["Synth"]
	if !ok {
		t.Fatalf("Synth component missing, got %v", keys(components))
	}
	if _, ok := components["NotAnObject"]; ok {
		t.Fatalf("scalar components should be skipped")
	}

	byName := make(map[string]params.Spec, len(specs))
	for _, spec := range specs {
		byName[spec.Describe().Name] = spec
	}

	enabled, ok := byName["enabled"].(params.Boolean)
	if !ok {
		t.Fatalf("enabled: want Boolean, got %T", byName["enabled"])
	}
	if !enabled.Default {
		t.Fatalf("enabled default should carry over")
	}
	if enabled.Precedence == nil || *enabled.Precedence != 1 {
		t.Fatalf("precedence extension should carry over, got %v", enabled.Precedence)
	}

	gain, ok := byName["gain"].(params.Number)
	if !ok {
		t.Fatalf("gain: want Number, got %T", byName["gain"])
	}
	if diff := cmp.Diff(&params.Bounds{Low: 0, High: 10}, gain.Bounds); diff != "" {
		t.Fatalf("gain bounds mismatch (-want +got):\n%s", diff)
	}
	if low, high := gain.SoftBounds(); low != 0 || high != 1 {
		t.Fatalf("soft bounds extension should win for display, got (%v, %v)", low, high)
	}
	if gain.Doc != "Output gain." {
		t.Fatalf("description should become doc text, got %q", gain.Doc)
	}

	voices, ok := byName["voices"].(params.Integer)
	if !ok {
		t.Fatalf("voices: want Integer, got %T", byName["voices"])
	}
	if voices.Default != 4 {
		t.Fatalf("voices default: want 4, got %v", voices.Default)
	}

	wave, ok := byName["wave"].(params.Selector)
	if !ok {
		t.Fatalf("wave: want Selector, got %T", byName["wave"])
	}
	if len(wave.Objects) != 3 || wave.Objects[1].Label != "square" {
		t.Fatalf("enum should become options, got %v", wave.Objects)
	}

	if _, ok := byName["tags"].(params.MultiSelector); !ok {
		t.Fatalf("tags: want MultiSelector, got %T", byName["tags"])
	}

	window, ok := byName["window"].(params.Range)
	if !ok {
		t.Fatalf("window: want Range, got %T", byName["window"])
	}
	if window.Default != [2]float64{0.1, 0.9} {
		t.Fatalf("window default: got %v", window.Default)
	}

	released, ok := byName["released"].(params.Date)
	if !ok {
		t.Fatalf("released: want Date, got %T", byName["released"])
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !released.Default.Equal(want) {
		t.Fatalf("released default: want %v, got %v", want, released.Default)
	}

	serial, ok := byName["serial"].(params.String)
	if !ok {
		t.Fatalf("serial: want String, got %T", byName["serial"])
	}
	if !serial.Constant {
		t.Fatalf("readOnly should mark the attribute constant")
	}
}

func TestObject_BuildsLiveTarget(t *testing.T) {
	parser := NewParser()

	target, err := parser.Object(context.Background(), []byte(synthDocument), "Synth")
	if err != nil {
		t.Fatalf("object: %v", err)
	}

	if got, _ := target.Get("gain"); got != 0.5 {
		t.Fatalf("gain default: want 0.5, got %v", got)
	}
	if err := target.Set("gain", 11.0); err == nil {
		t.Fatalf("bounds from the schema should be enforced")
	}
	if err := target.Set("serial", "abc"); err == nil {
		t.Fatalf("readOnly attributes should reject writes")
	}
}

func TestObject_UnknownComponent(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Object(context.Background(), []byte(synthDocument), "Missing"); err == nil {
		t.Fatalf("unknown component should fail")
	}
}

func TestComponents_EmptyPayload(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Components(context.Background(), nil); err == nil {
		t.Fatalf("empty payload should fail")
	}
}

func keys(m map[string][]params.Spec) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
