package params

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// Value is the generic attribute: any value is accepted.
type Value struct {
	Meta
	Default any
}

func (v Value) Kind() Kind         { return KindValue }
func (v Value) DefaultValue() any  { return v.Default }
func (v Value) Validate(any) error { return nil }

// String is a textual attribute. It shares the generic widget mapping
// with Value.
type String struct {
	Meta
	Default string
}

func (s String) Kind() Kind        { return KindValue }
func (s String) DefaultValue() any { return s.Default }

func (s String) Validate(value any) error {
	if value == nil {
		return nil
	}
	if _, ok := value.(string); !ok {
		return fmt.Errorf("params: %s expects a string, got %T", s.Name, value)
	}
	return nil
}

// Dict is a string-keyed mapping attribute.
type Dict struct {
	Meta
	Default map[string]any
}

func (d Dict) Kind() Kind        { return KindDict }
func (d Dict) DefaultValue() any { return d.Default }

func (d Dict) Validate(value any) error {
	if value == nil {
		return nil
	}
	if _, ok := value.(map[string]any); !ok {
		return fmt.Errorf("params: %s expects a map, got %T", d.Name, value)
	}
	return nil
}

// Boolean is a true/false attribute.
type Boolean struct {
	Meta
	Default bool
}

func (b Boolean) Kind() Kind        { return KindBoolean }
func (b Boolean) DefaultValue() any { return b.Default }

func (b Boolean) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("params: %s expects a bool, got %T", b.Name, value)
	}
	return nil
}

// Bounds is an inclusive numeric interval.
type Bounds struct {
	Low  float64
	High float64
}

// Number is a real-valued attribute. Bounds constrain assignment; Soft
// bounds, when set, take precedence for display.
type Number struct {
	Meta
	Default float64
	Bounds  *Bounds
	Soft    *Bounds
}

func (n Number) Kind() Kind        { return KindNumber }
func (n Number) DefaultValue() any { return n.Default }

// SoftBounds reports the display interval: explicit soft bounds when
// declared, hard bounds otherwise, and (0, 1) as a last resort so
// slider widgets always have an extent.
func (n Number) SoftBounds() (float64, float64) {
	if n.Soft != nil {
		return n.Soft.Low, n.Soft.High
	}
	if n.Bounds != nil {
		return n.Bounds.Low, n.Bounds.High
	}
	return 0, 1
}

func (n Number) Validate(value any) error {
	f, ok := toFloat(value)
	if !ok {
		return fmt.Errorf("params: %s expects a number, got %T", n.Name, value)
	}
	if n.Bounds != nil && (f < n.Bounds.Low || f > n.Bounds.High) {
		return fmt.Errorf("params: %s value %v is outside bounds [%v, %v]",
			n.Name, f, n.Bounds.Low, n.Bounds.High)
	}
	return nil
}

// Integer is a whole-valued attribute. JSON-decoded float64 values are
// accepted when integral, so bulk initialization from JSON works.
type Integer struct {
	Meta
	Default int
	Bounds  *Bounds
	Soft    *Bounds
}

func (i Integer) Kind() Kind        { return KindInteger }
func (i Integer) DefaultValue() any { return i.Default }

func (i Integer) SoftBounds() (float64, float64) {
	if i.Soft != nil {
		return i.Soft.Low, i.Soft.High
	}
	if i.Bounds != nil {
		return i.Bounds.Low, i.Bounds.High
	}
	return 0, 1
}

func (i Integer) Validate(value any) error {
	f, ok := toFloat(value)
	if !ok || f != math.Trunc(f) {
		return fmt.Errorf("params: %s expects an integer, got %v (%T)", i.Name, value, value)
	}
	if i.Bounds != nil && (f < i.Bounds.Low || f > i.Bounds.High) {
		return fmt.Errorf("params: %s value %v is outside bounds [%v, %v]",
			i.Name, f, i.Bounds.Low, i.Bounds.High)
	}
	return nil
}

// Range is a (low, high) real interval attribute.
type Range struct {
	Meta
	Default [2]float64
	Bounds  *Bounds
	Soft    *Bounds
}

func (r Range) Kind() Kind        { return KindRange }
func (r Range) DefaultValue() any { return r.Default }

func (r Range) SoftBounds() (float64, float64) {
	if r.Soft != nil {
		return r.Soft.Low, r.Soft.High
	}
	if r.Bounds != nil {
		return r.Bounds.Low, r.Bounds.High
	}
	return 0, 1
}

func (r Range) Validate(value any) error {
	pair, ok := toRange(value)
	if !ok {
		return fmt.Errorf("params: %s expects a (low, high) pair, got %T", r.Name, value)
	}
	if pair[0] > pair[1] {
		return fmt.Errorf("params: %s low %v exceeds high %v", r.Name, pair[0], pair[1])
	}
	if r.Bounds != nil && (pair[0] < r.Bounds.Low || pair[1] > r.Bounds.High) {
		return fmt.Errorf("params: %s range %v is outside bounds [%v, %v]",
			r.Name, pair, r.Bounds.Low, r.Bounds.High)
	}
	return nil
}

// Selector is a single choice from an enumerated range.
type Selector struct {
	Meta
	Default any
	Objects []Option
}

func (s Selector) Kind() Kind        { return KindSelector }
func (s Selector) DefaultValue() any { return s.Default }
func (s Selector) Range() []Option   { return s.Objects }

func (s Selector) Validate(value any) error {
	return validateMember(s.Name, value, s.Objects)
}

// MultiSelector is a multiple choice from an enumerated range; values
// are slices whose elements must all come from the range.
type MultiSelector struct {
	Meta
	Default []any
	Objects []Option
}

func (m MultiSelector) Kind() Kind        { return KindMultiSelector }
func (m MultiSelector) DefaultValue() any { return m.Default }
func (m MultiSelector) Range() []Option   { return m.Objects }

func (m MultiSelector) Validate(value any) error {
	items, ok := toSlice(value)
	if !ok {
		return fmt.Errorf("params: %s expects a list, got %T", m.Name, value)
	}
	for _, item := range items {
		if err := validateMember(m.Name, item, m.Objects); err != nil {
			return err
		}
	}
	return nil
}

// File is a path chosen from an enumerated candidate set. A nil value
// means no file has been chosen.
type File struct {
	Meta
	Default any
	Objects []Option
}

func (f File) Kind() Kind        { return KindFile }
func (f File) DefaultValue() any { return f.Default }
func (f File) Range() []Option   { return f.Objects }

func (f File) Validate(value any) error {
	if value == nil {
		return nil
	}
	if _, ok := value.(string); !ok {
		return fmt.Errorf("params: %s expects a path string, got %T", f.Name, value)
	}
	if len(f.Objects) == 0 {
		return nil
	}
	return validateMember(f.Name, value, f.Objects)
}

// Date is a calendar date attribute.
type Date struct {
	Meta
	Default time.Time
}

func (d Date) Kind() Kind        { return KindDate }
func (d Date) DefaultValue() any { return d.Default }

func (d Date) Validate(value any) error {
	if _, ok := value.(time.Time); !ok {
		return fmt.Errorf("params: %s expects a time.Time, got %T", d.Name, value)
	}
	return nil
}

// Action is a callable attribute. It has no widget mapping; the panel
// reports an unmapped-kind error if asked to render one.
type Action struct {
	Meta
	Default func()
}

func (a Action) Kind() Kind        { return KindAction }
func (a Action) DefaultValue() any { return a.Default }

func (a Action) Validate(value any) error {
	if value == nil {
		return nil
	}
	if _, ok := value.(func()); !ok {
		return fmt.Errorf("params: %s expects a func(), got %T", a.Name, value)
	}
	return nil
}

func validateMember(name string, value any, options []Option) error {
	for _, opt := range options {
		if reflect.DeepEqual(opt.Value, value) {
			return nil
		}
	}
	return fmt.Errorf("params: %v is not among the allowed values of %s", value, name)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func toSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func toRange(value any) ([2]float64, bool) {
	switch v := value.(type) {
	case [2]float64:
		return v, true
	case []float64:
		if len(v) == 2 {
			return [2]float64{v[0], v[1]}, true
		}
	case []any:
		if len(v) == 2 {
			lo, okLo := toFloat(v[0])
			hi, okHi := toFloat(v[1])
			if okLo && okHi {
				return [2]float64{lo, hi}, true
			}
		}
	}
	return [2]float64{}, false
}
