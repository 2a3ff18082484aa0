package params

// Kind is the closed enumeration of attribute kinds. Widget mapping
// switches over this set exhaustively; adding a kind here requires a
// mapping decision in the panel package.
type Kind string

const (
	// KindValue is a generic, unconstrained value.
	KindValue Kind = "value"
	// KindDict is a string-keyed mapping value.
	KindDict Kind = "dict"
	// KindSelector is a single choice from an enumerated range.
	KindSelector Kind = "selector"
	// KindBoolean is a true/false flag.
	KindBoolean Kind = "boolean"
	// KindNumber is a real number, optionally bounded.
	KindNumber Kind = "number"
	// KindInteger is a whole number, optionally bounded.
	KindInteger Kind = "integer"
	// KindRange is a (low, high) pair of real numbers.
	KindRange Kind = "range"
	// KindMultiSelector is a multiple choice from an enumerated range.
	KindMultiSelector Kind = "multiselector"
	// KindDate is a calendar date.
	KindDate Kind = "date"
	// KindFile is a file path chosen from an enumerated candidate set.
	KindFile Kind = "file"
	// KindAction is a callable attribute. It carries no editable value
	// and has no widget mapping.
	KindAction Kind = "action"
)

// Meta carries the metadata shared by every attribute spec.
type Meta struct {
	// Name identifies the attribute on its owning object.
	Name string
	// Doc is an optional human-readable description.
	Doc string
	// Precedence is an optional ordering/visibility hint. Nil means no
	// precedence was declared; such attributes are always displayed and
	// sort at the panel's configured default precedence.
	Precedence *float64
	// Constant marks attributes that reject assignment after
	// construction.
	Constant bool
}

// Describe returns the shared metadata. Embedding Meta gives every
// concrete spec this method.
func (m Meta) Describe() Meta { return m }

// Spec describes one attribute: identity, kind, default value, and the
// validation contract enforced on assignment.
type Spec interface {
	Describe() Meta
	Kind() Kind
	DefaultValue() any
	Validate(value any) error
}

// Option is one (label, value) pair of an enumerated range. Order is
// significant: ranges preserve declaration order.
type Option struct {
	Label string
	Value any
}

// Ranged is implemented by specs whose values come from an enumerated
// range of options.
type Ranged interface {
	Range() []Option
}

// SoftBounded is implemented by specs that carry display bounds for
// slider-style widgets. Soft bounds are hints; they do not constrain
// assignment.
type SoftBounded interface {
	SoftBounds() (start, end float64)
}

// Prec is a convenience constructor for Meta.Precedence values.
func Prec(v float64) *float64 { return &v }
