package panel

import "errors"

var (
	// ErrNoWidget reports an attribute kind with no widget mapping.
	ErrNoWidget = errors.New("panel: no widget for attribute kind")

	// ErrUnknownAttribute reports a widget request for an attribute the
	// target does not declare.
	ErrUnknownAttribute = errors.New("panel: unknown attribute")

	// ErrMissingName reports a target whose attribute set lacks the
	// guaranteed `name` attribute. Well-formed targets cannot trigger
	// this; it surfaces malformed Parameterized implementations.
	ErrMissingName = errors.New("panel: target has no name attribute")
)
