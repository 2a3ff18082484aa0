package panel

import (
	"fmt"

	"github.com/goliatone/go-parampanel/pkg/params"
)

// Choice is one selectable option of a select-style widget. For
// enumerated attributes both fields hold the display label; the panel
// keeps the label→value lookup internally and translates on write-back.
type Choice struct {
	Label string
	Value string
}

// Descriptor is the renderer-independent description of one control:
// widget type, label, current (possibly label-remapped) value, slider
// bounds, and selectable choices.
type Descriptor struct {
	// Name is the attribute the control is bound to.
	Name string
	// Type selects the control family.
	Type WidgetType
	// Label is the formatted display label.
	Label string
	// Value is the current value. For enumerated attributes it is the
	// option label (or labels) rather than the underlying value.
	Value any
	// Start and End carry soft slider bounds when the attribute
	// declares them.
	Start *float64
	End   *float64
	// Options lists the selectable choices for select-style widgets.
	Options []Choice
	// Doc is the attribute's description, surfaced as help text.
	Doc string
}

// Widget builds the bound control descriptor for one attribute. The
// attribute must exist on the target and its kind must have a widget
// mapping; both failures are hard errors.
func (p *Panel) Widget(name string) (Descriptor, error) {
	spec, ok := p.specFor(name)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	widgetType, err := WidgetFor(spec.Kind())
	if err != nil {
		return Descriptor{}, fmt.Errorf("attribute %q: %w", name, err)
	}

	value, err := p.target.Get(name)
	if err != nil {
		return Descriptor{}, fmt.Errorf("panel: read %q: %w", name, err)
	}

	desc := Descriptor{
		Name:  name,
		Type:  widgetType,
		Label: name,
		Value: value,
		Doc:   spec.Describe().Doc,
	}
	if p.cfg.LabelFormatter != nil {
		desc.Label = p.cfg.LabelFormatter(name)
	}

	if ranged, ok := spec.(params.Ranged); ok {
		if _, isMap := value.(map[string]any); !isMap {
			if err := p.applyRange(&desc, spec, ranged.Range()); err != nil {
				return Descriptor{}, err
			}
		}
	}

	if bounded, ok := spec.(params.SoftBounded); ok {
		start, end := bounded.SoftBounds()
		desc.Start = &start
		desc.End = &end
	}

	return desc, nil
}

// applyRange remaps the descriptor value from underlying values to
// option labels and records the label→value lookup used by Apply to
// translate edits back.
func (p *Panel) applyRange(desc *Descriptor, spec params.Spec, options []params.Option) error {
	// First inserted label wins for duplicate underlying values, so the
	// same value always renders as the same label.
	reverse := make(map[any]string, len(options))
	for _, opt := range options {
		if _, seen := reverse[keyFor(opt.Value)]; !seen {
			reverse[keyFor(opt.Value)] = opt.Label
		}
	}

	switch value := desc.Value.(type) {
	case []any:
		labels := make([]string, len(value))
		for i, item := range value {
			label, ok := reverse[keyFor(item)]
			if !ok {
				return fmt.Errorf("panel: %q value %v is not in the attribute range", desc.Name, item)
			}
			labels[i] = label
		}
		desc.Value = labels
	case []string:
		labels := make([]string, len(value))
		for i, item := range value {
			label, ok := reverse[keyFor(item)]
			if !ok {
				return fmt.Errorf("panel: %q value %v is not in the attribute range", desc.Name, item)
			}
			labels[i] = label
		}
		desc.Value = labels
	case nil:
		if spec.Kind() == params.KindFile {
			// No file chosen yet.
			desc.Value = ""
			break
		}
		label, ok := reverse[keyFor(nil)]
		if !ok {
			return fmt.Errorf("panel: %q value <nil> is not in the attribute range", desc.Name)
		}
		desc.Value = label
	default:
		label, ok := reverse[keyFor(value)]
		if !ok {
			return fmt.Errorf("panel: %q value %v is not in the attribute range", desc.Name, value)
		}
		desc.Value = label
	}

	lookup := make(map[string]any, len(options))
	choices := make([]Choice, 0, len(options))
	for _, opt := range options {
		lookup[opt.Label] = opt.Value
		choices = append(choices, Choice{Label: opt.Label, Value: opt.Label})
	}
	p.lookups[desc.Name] = lookup
	desc.Options = choices

	return nil
}

// keyFor makes option values usable as map keys. Comparable values map
// to themselves; anything else falls back to its printed form.
func keyFor(value any) any {
	switch value.(type) {
	case nil, string, bool, int, int32, int64, float32, float64:
		return value
	}
	return fmt.Sprintf("%#v", value)
}

// Apply is the change relay: it translates option labels back to their
// underlying values through the cached lookup, then assigns the result
// to the target attribute. Validation errors from the target propagate
// unchanged.
func (p *Panel) Apply(name string, value any) error {
	lookup, ok := p.lookups[name]
	if ok {
		switch v := value.(type) {
		case string:
			if underlying, found := lookup[v]; found {
				value = underlying
			}
		case []string:
			mapped := make([]any, len(v))
			for i, label := range v {
				if underlying, found := lookup[label]; found {
					mapped[i] = underlying
				} else {
					mapped[i] = label
				}
			}
			value = mapped
		case []any:
			mapped := make([]any, len(v))
			for i, item := range v {
				if label, isString := item.(string); isString {
					if underlying, found := lookup[label]; found {
						mapped[i] = underlying
						continue
					}
				}
				mapped[i] = item
			}
			value = mapped
		}
	}
	return p.target.Set(name, value)
}
