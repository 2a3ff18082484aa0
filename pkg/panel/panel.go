package panel

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-parampanel/pkg/params"
)

// Panel binds a parameterized target to an ordered set of widget
// descriptors. Descriptors are rebuilt on every call to Build; the
// label→value lookups survive for the panel's lifetime so Apply can
// translate option labels back to underlying values.
type Panel struct {
	target  params.Parameterized
	cfg     Config
	lookups map[string]map[string]any
}

// New constructs a Panel over the target. The configured initializer,
// when present, runs once before the panel is returned.
func New(target params.Parameterized, options ...Option) (*Panel, error) {
	if target == nil {
		return nil, fmt.Errorf("panel: target is required")
	}

	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &Panel{
		target:  target,
		cfg:     cfg,
		lookups: make(map[string]map[string]any),
	}

	if cfg.Initializer != nil {
		cfg.Initializer(target)
	}

	return p, nil
}

// Target returns the bound parameterized object.
func (p *Panel) Target() params.Parameterized { return p.target }

// Config returns the resolved panel configuration.
func (p *Panel) Config() Config { return p.cfg }

func (p *Panel) specFor(name string) (params.Spec, bool) {
	for _, spec := range p.target.Specs() {
		if spec.Describe().Name == name {
			return spec, true
		}
	}
	return nil, false
}

// Ordered returns the attribute names to display, sorted by ascending
// precedence key, filtered against the display threshold, and
// alphabetical within equal-key groups. The `name` attribute is
// removed; its absence is an error.
func (p *Panel) Ordered() ([]string, error) {
	type entry struct {
		name string
		prec *float64
		key  float64
	}

	specs := p.target.Specs()
	entries := make([]entry, 0, len(specs))
	for _, spec := range specs {
		meta := spec.Describe()
		key := p.cfg.DefaultPrecedence
		if meta.Precedence != nil {
			key = *meta.Precedence
		}
		entries = append(entries, entry{name: meta.Name, prec: meta.Precedence, key: key})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	filtered := entries[:0]
	for _, e := range entries {
		if e.prec == nil || *e.prec >= p.cfg.DisplayThreshold {
			filtered = append(filtered, e)
		}
	}

	// Equal keys are already adjacent; sort each run alphabetically.
	for start := 0; start < len(filtered); {
		end := start + 1
		for end < len(filtered) && filtered[end].key == filtered[start].key {
			end++
		}
		group := filtered[start:end]
		sort.Slice(group, func(i, j int) bool { return group[i].name < group[j].name })
		start = end
	}

	ordered := make([]string, 0, len(filtered))
	sawName := false
	for _, e := range filtered {
		if e.name == "name" {
			sawName = true
			continue
		}
		ordered = append(ordered, e.name)
	}
	if !sawName {
		return nil, ErrMissingName
	}

	return ordered, nil
}

// Heading returns the static control carrying the target's own name,
// rendered once ahead of the attribute controls.
func (p *Panel) Heading() (Descriptor, error) {
	value, err := p.target.Get("name")
	if err != nil {
		return Descriptor{}, ErrMissingName
	}
	return Descriptor{
		Name:  "name",
		Type:  WidgetStaticText,
		Label: fmt.Sprintf("%v", value),
		Value: fmt.Sprintf("%v", value),
	}, nil
}

// Build assembles the full property sheet: the heading followed by one
// bound descriptor per displayed attribute, in precedence order.
func (p *Panel) Build() ([]Descriptor, error) {
	ordered, err := p.Ordered()
	if err != nil {
		return nil, err
	}

	heading, err := p.Heading()
	if err != nil {
		return nil, err
	}

	descriptors := make([]Descriptor, 0, len(ordered)+1)
	descriptors = append(descriptors, heading)
	for _, name := range ordered {
		desc, err := p.Widget(name)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, desc)
	}

	return descriptors, nil
}
