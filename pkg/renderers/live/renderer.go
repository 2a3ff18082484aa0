// Package live renders the panel as an interactive bubbletea property
// sheet. Rows update in place as values are committed, and external
// writes to the target refresh the sheet through its watcher hook.
package live

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-parampanel/pkg/panel"
	"github.com/goliatone/go-parampanel/pkg/params"
	"github.com/goliatone/go-parampanel/pkg/render"
)

// ProgramRunner executes a bubbletea model to completion and returns
// the final model. Tests swap it to drive Update directly.
type ProgramRunner func(ctx context.Context, m tea.Model, subscribe func(send func(tea.Msg))) (tea.Model, error)

// Option customises the renderer.
type Option func(*Renderer)

// WithProgramRunner replaces the default tea.Program execution.
func WithProgramRunner(runner ProgramRunner) Option {
	return func(r *Renderer) {
		if runner != nil {
			r.runner = runner
		}
	}
}

// Renderer implements render.Renderer on top of bubbletea.
type Renderer struct {
	runner ProgramRunner
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a live renderer that owns the terminal for the
// duration of the session.
func New(options ...Option) *Renderer {
	r := &Renderer{runner: runProgram}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "live" }

// ContentType reports the serialization format of the session result.
func (r *Renderer) ContentType() string { return "application/json" }

// Render runs the sheet until the user quits, then returns the
// target's final attribute values as JSON. When the target supports
// watchers, external mutations refresh the sheet mid-session.
func (r *Renderer) Render(ctx context.Context, p *panel.Panel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("live: context is required")
	}
	if p == nil {
		return nil, errors.New("live: panel is required")
	}

	model, err := NewModel(p, opts.Title)
	if err != nil {
		return nil, fmt.Errorf("live: build sheet: %w", err)
	}

	subscribe := func(send func(tea.Msg)) {
		watchable, ok := p.Target().(params.Watchable)
		if !ok {
			return
		}
		names, err := p.Ordered()
		if err != nil {
			return
		}
		for _, name := range names {
			watchable.Watch(name, func(params.Event) {
				send(refreshMsg{})
			})
		}
	}

	final, err := r.runner(ctx, model, subscribe)
	if err != nil {
		return nil, fmt.Errorf("live: session: %w", err)
	}

	sheet, ok := final.(Model)
	if !ok {
		return nil, errors.New("live: unexpected final model")
	}
	if sheet.Err() != nil {
		return nil, fmt.Errorf("live: session: %w", sheet.Err())
	}
	return sheet.Result()
}

func runProgram(ctx context.Context, m tea.Model, subscribe func(send func(tea.Msg))) (tea.Model, error) {
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if subscribe != nil {
		subscribe(program.Send)
	}
	return program.Run()
}
