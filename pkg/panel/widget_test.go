package panel

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-parampanel/pkg/params"
)

func newSelectorTarget(t *testing.T) *params.Object {
	t.Helper()
	return params.MustNewObject("Device",
		params.Selector{
			Meta:    params.Meta{Name: "quality"},
			Default: 2,
			Objects: []params.Option{{Label: "Low", Value: 1}, {Label: "High", Value: 2}},
		},
	)
}

func TestWidget_SelectorRemapsValueToLabel(t *testing.T) {
	p, err := New(newSelectorTarget(t))
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	desc, err := p.Widget("quality")
	if err != nil {
		t.Fatalf("widget: %v", err)
	}

	if desc.Type != WidgetSelect {
		t.Fatalf("want select widget, got %s", desc.Type)
	}
	if desc.Value != "High" {
		t.Fatalf("want value %q, got %v", "High", desc.Value)
	}
	want := []Choice{{Label: "Low", Value: "Low"}, {Label: "High", Value: "High"}}
	if diff := cmp.Diff(want, desc.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_MultiSelectorRemapsEachElement(t *testing.T) {
	target := params.MustNewObject("Device",
		params.MultiSelector{
			Meta:    params.Meta{Name: "channels"},
			Default: []any{"l", "r"},
			Objects: []params.Option{
				{Label: "Left", Value: "l"},
				{Label: "Right", Value: "r"},
				{Label: "Center", Value: "c"},
			},
		},
	)
	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	desc, err := p.Widget("channels")
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	if diff := cmp.Diff([]string{"Left", "Right"}, desc.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestWidget_FileWithoutSelectionShowsEmptyString(t *testing.T) {
	target := params.MustNewObject("Loader",
		params.File{
			Meta:    params.Meta{Name: "source"},
			Objects: []params.Option{{Label: "a.csv", Value: "a.csv"}},
		},
	)
	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	desc, err := p.Widget("source")
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	if desc.Value != "" {
		t.Fatalf("want empty placeholder value, got %v", desc.Value)
	}
}

func TestWidget_DuplicateRangeValuesKeepFirstLabel(t *testing.T) {
	target := params.MustNewObject("Device",
		params.Selector{
			Meta:    params.Meta{Name: "mode"},
			Default: 1,
			Objects: []params.Option{
				{Label: "Fast", Value: 1},
				{Label: "Quick", Value: 1},
			},
		},
	)
	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	desc, err := p.Widget("mode")
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	if desc.Value != "Fast" {
		t.Fatalf("first inserted label should win, got %v", desc.Value)
	}
}

func TestWidget_SoftBoundsPopulateStartEnd(t *testing.T) {
	target := params.MustNewObject("Device",
		params.Number{
			Meta:    params.Meta{Name: "gain"},
			Default: 0.5,
			Bounds:  &params.Bounds{Low: 0, High: 1},
			Soft:    &params.Bounds{Low: 0.1, High: 0.9},
		},
	)
	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	desc, err := p.Widget("gain")
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	if desc.Start == nil || desc.End == nil {
		t.Fatalf("expected soft bounds, got start=%v end=%v", desc.Start, desc.End)
	}
	if *desc.Start != 0.1 || *desc.End != 0.9 {
		t.Fatalf("want (0.1, 0.9), got (%v, %v)", *desc.Start, *desc.End)
	}
}

func TestWidget_LabelFormatting(t *testing.T) {
	target := params.MustNewObject("Device",
		params.Boolean{Meta: params.Meta{Name: "auto_start"}},
	)

	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	desc, err := p.Widget("auto_start")
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	if desc.Label != "Auto Start" {
		t.Fatalf("want formatted label %q, got %q", "Auto Start", desc.Label)
	}

	raw, err := New(target, WithLabelFormatter(nil))
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	desc, err = raw.Widget("auto_start")
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	if desc.Label != "auto_start" {
		t.Fatalf("nil formatter should keep raw name, got %q", desc.Label)
	}
}

func TestWidget_UnmappedKindFails(t *testing.T) {
	target := params.MustNewObject("Device",
		params.Action{Meta: params.Meta{Name: "reset"}},
	)
	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	if _, err := p.Widget("reset"); !errors.Is(err, ErrNoWidget) {
		t.Fatalf("want ErrNoWidget, got %v", err)
	}
}

func TestWidget_UnknownAttributeFails(t *testing.T) {
	p, err := New(newSelectorTarget(t))
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	if _, err := p.Widget("missing"); !errors.Is(err, ErrUnknownAttribute) {
		t.Fatalf("want ErrUnknownAttribute, got %v", err)
	}
}

func TestApply_TranslatesLabelToUnderlyingValue(t *testing.T) {
	target := newSelectorTarget(t)
	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	if _, err := p.Widget("quality"); err != nil {
		t.Fatalf("widget: %v", err)
	}

	if err := p.Apply("quality", "Low"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, err := target.Get("quality")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != 1 {
		t.Fatalf("underlying value should land on the target: want 1, got %v", got)
	}
}

func TestApply_TranslatesLabelListForMultiSelect(t *testing.T) {
	target := params.MustNewObject("Device",
		params.MultiSelector{
			Meta:    params.Meta{Name: "channels"},
			Default: []any{},
			Objects: []params.Option{
				{Label: "Left", Value: "l"},
				{Label: "Right", Value: "r"},
			},
		},
	)
	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	if _, err := p.Widget("channels"); err != nil {
		t.Fatalf("widget: %v", err)
	}

	if err := p.Apply("channels", []string{"Right"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, err := target.Get("channels")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff([]any{"r"}, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_VerbatimWithoutLookup(t *testing.T) {
	target := params.MustNewObject("Device",
		params.Number{Meta: params.Meta{Name: "gain"}, Default: 0.5},
	)
	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	if err := p.Apply("gain", 0.25); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got, _ := target.Get("gain"); got != 0.25 {
		t.Fatalf("want 0.25, got %v", got)
	}
}

func TestApply_ValidationErrorPropagates(t *testing.T) {
	target := params.MustNewObject("Device",
		params.Number{Meta: params.Meta{Name: "gain"}, Default: 0.5, Bounds: &params.Bounds{Low: 0, High: 1}},
	)
	p, err := New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	err = p.Apply("gain", 5.0)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "bounds") {
		t.Fatalf("expected descriptive bounds error, got %v", err)
	}
	if got, _ := target.Get("gain"); got != 0.5 {
		t.Fatalf("rejected apply must not mutate target, got %v", got)
	}
}
