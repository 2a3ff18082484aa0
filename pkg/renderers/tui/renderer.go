// Package tui drives a terminal walk-through of the panel: one prompt
// per widget, with each accepted answer pushed through the panel's
// change relay so the target mutates as the session proceeds.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-parampanel/pkg/panel"
	"github.com/goliatone/go-parampanel/pkg/render"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithDriver swaps the prompt driver. The default talks to the
// terminal via survey.
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// Renderer implements render.Renderer for interactive terminal
// sessions.
type Renderer struct {
	driver PromptDriver
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with the survey-backed driver.
func New(options ...Option) *Renderer {
	r := &Renderer{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "tui" }

// ContentType reports the serialization format of the session result.
func (r *Renderer) ContentType() string { return "application/json" }

// Render walks the panel's widgets, prompting for each and applying
// answers through the change relay. It returns the final attribute
// values as JSON.
func (r *Renderer) Render(ctx context.Context, p *panel.Panel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if p == nil {
		return nil, errors.New("tui: panel is required")
	}

	descriptors, err := p.Build()
	if err != nil {
		return nil, fmt.Errorf("tui: build panel: %w", err)
	}

	final := make(map[string]any, len(descriptors))
	for _, desc := range descriptors {
		if desc.Type == panel.WidgetStaticText {
			title := fmt.Sprintf("%v", desc.Value)
			if opts.Title != "" {
				title = opts.Title
			}
			if err := r.driver.Info(ctx, title); err != nil {
				return nil, err
			}
			continue
		}
		if err := r.promptWidget(ctx, p, desc); err != nil {
			return nil, err
		}
		value, err := p.Target().Get(desc.Name)
		if err != nil {
			return nil, fmt.Errorf("tui: read %q: %w", desc.Name, err)
		}
		final[desc.Name] = value
	}

	return json.MarshalIndent(final, "", "  ")
}

// promptWidget keeps asking until the change relay accepts a value.
// Rejections surface as informational messages, mirroring inline
// validation.
func (r *Renderer) promptWidget(ctx context.Context, p *panel.Panel, desc panel.Descriptor) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, err := r.askOnce(ctx, desc)
		if err != nil {
			return err
		}

		applyErr := p.Apply(desc.Name, value)
		if applyErr == nil {
			return nil
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("invalid value: %v", applyErr)); err != nil {
			return err
		}
	}
}

func (r *Renderer) askOnce(ctx context.Context, desc panel.Descriptor) (any, error) {
	message := desc.Label

	switch desc.Type {
	case panel.WidgetCheckbox:
		current, _ := desc.Value.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: current, Help: desc.Doc})

	case panel.WidgetSelect:
		labels := choiceLabels(desc.Options)
		current, _ := desc.Value.(string)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: indexOf(labels, current),
			Help:         desc.Doc,
		})
		if err != nil {
			return nil, err
		}
		return labels[idx], nil

	case panel.WidgetMultiSelect:
		labels := choiceLabels(desc.Options)
		var defaults []int
		if selected, ok := desc.Value.([]string); ok {
			for _, label := range selected {
				if idx := indexOf(labels, label); idx >= 0 {
					defaults = append(defaults, idx)
				}
			}
		}
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  labels,
			Help:     desc.Doc,
			Defaults: defaults,
		})
		if err != nil {
			return nil, err
		}
		picked := make([]string, len(indices))
		for i, idx := range indices {
			picked[i] = labels[idx]
		}
		return picked, nil

	case panel.WidgetFloatSlider:
		return r.askFloat(ctx, desc, message)

	case panel.WidgetIntSlider:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   withBoundsHint(message, desc),
			Default:   fmt.Sprintf("%v", desc.Value),
			Help:      desc.Doc,
			Validator: validateInt,
		})
		if err != nil {
			return nil, err
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return nil, fmt.Errorf("tui: parse integer: %w", err)
		}
		return parsed, nil

	case panel.WidgetRangeSlider:
		return r.askRange(ctx, desc, message)

	case panel.WidgetDatePicker:
		defaultText := ""
		if date, ok := desc.Value.(time.Time); ok && !date.IsZero() {
			defaultText = date.Format("2006-01-02")
		}
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   message + " (YYYY-MM-DD)",
			Default:   defaultText,
			Help:      desc.Doc,
			Validator: validateDate,
		})
		if err != nil {
			return nil, err
		}
		return time.Parse("2006-01-02", strings.TrimSpace(answer))

	default:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: literalDefault(desc.Value),
			Help:    desc.Doc,
		})
		if err != nil {
			return nil, err
		}
		return parseLiteral(answer), nil
	}
}

func (r *Renderer) askFloat(ctx context.Context, desc panel.Descriptor, message string) (any, error) {
	answer, err := r.driver.Input(ctx, InputConfig{
		Message:   withBoundsHint(message, desc),
		Default:   fmt.Sprintf("%v", desc.Value),
		Help:      desc.Doc,
		Validator: validateFloat,
	})
	if err != nil {
		return nil, err
	}
	return strconv.ParseFloat(strings.TrimSpace(answer), 64)
}

func (r *Renderer) askRange(ctx context.Context, desc panel.Descriptor, message string) (any, error) {
	var pair [2]float64
	if current, ok := desc.Value.([2]float64); ok {
		pair = current
	}
	lowText, err := r.driver.Input(ctx, InputConfig{
		Message:   message + " (low)",
		Default:   fmt.Sprintf("%v", pair[0]),
		Help:      desc.Doc,
		Validator: validateFloat,
	})
	if err != nil {
		return nil, err
	}
	highText, err := r.driver.Input(ctx, InputConfig{
		Message:   message + " (high)",
		Default:   fmt.Sprintf("%v", pair[1]),
		Validator: validateFloat,
	})
	if err != nil {
		return nil, err
	}
	low, err := strconv.ParseFloat(strings.TrimSpace(lowText), 64)
	if err != nil {
		return nil, fmt.Errorf("tui: parse range low: %w", err)
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(highText), 64)
	if err != nil {
		return nil, fmt.Errorf("tui: parse range high: %w", err)
	}
	return [2]float64{low, high}, nil
}

func withBoundsHint(message string, desc panel.Descriptor) string {
	if desc.Start == nil || desc.End == nil {
		return message
	}
	return fmt.Sprintf("%s (%g to %g)", message, *desc.Start, *desc.End)
}

func choiceLabels(choices []panel.Choice) []string {
	labels := make([]string, len(choices))
	for i, choice := range choices {
		labels[i] = choice.Label
	}
	return labels
}

func indexOf(labels []string, label string) int {
	for i, candidate := range labels {
		if candidate == label {
			return i
		}
	}
	return 0
}

func validateFloat(text string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func validateInt(text string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(text)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func validateDate(text string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(text)); err != nil {
		return fmt.Errorf("enter a date as YYYY-MM-DD")
	}
	return nil
}

func literalDefault(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(raw)
}

// parseLiteral decodes JSON-shaped answers into structured values and
// leaves anything else as the raw string.
func parseLiteral(answer string) any {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return ""
	}
	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return parsed
	}
	return answer
}
