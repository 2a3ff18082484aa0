// Package params implements the declarative parameter system the panel
// adapter inspects: named, typed attributes with defaults, bounds,
// enumerated ranges, display precedence, and validating assignment.
//
// Attribute kinds form a closed enumeration (Kind). Optional per-kind
// capabilities such as soft display bounds or an enumerated range are
// modelled as interfaces (SoftBounded, Ranged) that concrete Spec
// variants implement, so callers probe capabilities with a type
// assertion instead of reflection.
package params
