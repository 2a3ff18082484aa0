package tui

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-parampanel/pkg/panel"
	"github.com/goliatone/go-parampanel/pkg/params"
	"github.com/goliatone/go-parampanel/pkg/render"
)

// fakeDriver replays scripted answers and records prompts.
type fakeDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	multis   [][]int
	infos    []string
}

func (d *fakeDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (d *fakeDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *fakeDriver) Select(context.Context, SelectConfig) (int, error) {
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return answer, nil
}

func (d *fakeDriver) MultiSelect(context.Context, SelectConfig) ([]int, error) {
	answer := d.multis[0]
	d.multis = d.multis[1:]
	return answer, nil
}

func (d *fakeDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func newSessionPanel(t *testing.T) (*panel.Panel, *params.Object) {
	t.Helper()
	target := params.MustNewObject("Session",
		params.Boolean{Meta: params.Meta{Name: "enabled", Precedence: params.Prec(1)}, Default: false},
		params.Number{Meta: params.Meta{Name: "gain", Precedence: params.Prec(2)}, Default: 0.5, Bounds: &params.Bounds{Low: 0, High: 1}},
		params.Selector{
			Meta:    params.Meta{Name: "quality", Precedence: params.Prec(3)},
			Default: 1,
			Objects: []params.Option{{Label: "Low", Value: 1}, {Label: "High", Value: 2}},
		},
	)
	p, err := panel.New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	return p, target
}

func TestRender_AppliesAnswersThroughChangeRelay(t *testing.T) {
	p, target := newSessionPanel(t)

	driver := &fakeDriver{
		inputs:   []string{"0.9"},
		confirms: []bool{true},
		selects:  []int{1},
	}
	renderer := New(WithDriver(driver))

	out, err := renderer.Render(context.Background(), p, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got, _ := target.Get("enabled"); got != true {
		t.Fatalf("enabled: want true, got %v", got)
	}
	if got, _ := target.Get("gain"); got != 0.9 {
		t.Fatalf("gain: want 0.9, got %v", got)
	}
	// The select answer is the label "High"; the underlying value must
	// land on the target.
	if got, _ := target.Get("quality"); got != 2 {
		t.Fatalf("quality: want 2, got %v", got)
	}

	var result map[string]any
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("result should be JSON: %v", err)
	}
	want := map[string]any{"enabled": true, "gain": 0.9, "quality": float64(2)}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	if len(driver.infos) == 0 {
		t.Fatalf("heading should be announced via Info")
	}
}

func TestRender_RejectedValueRepromptsUntilValid(t *testing.T) {
	target := params.MustNewObject("Session",
		params.Number{Meta: params.Meta{Name: "gain"}, Default: 0.5, Bounds: &params.Bounds{Low: 0, High: 1}},
	)
	p, err := panel.New(target)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}

	driver := &fakeDriver{inputs: []string{"7", "0.25"}}
	renderer := New(WithDriver(driver))

	if _, err := renderer.Render(context.Background(), p, render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got, _ := target.Get("gain"); got != 0.25 {
		t.Fatalf("gain: want 0.25 after re-prompt, got %v", got)
	}

	foundWarning := false
	for _, msg := range driver.infos {
		if strings.HasPrefix(msg, "invalid value") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Fatalf("rejected value should surface an inline message, infos=%v", driver.infos)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	p, _ := newSessionPanel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := New(WithDriver(&fakeDriver{}))
	if _, err := renderer.Render(ctx, p, render.RenderOptions{}); err == nil {
		t.Fatalf("cancelled context should abort the session")
	}
}
