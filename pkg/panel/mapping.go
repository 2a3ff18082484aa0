package panel

import (
	"fmt"

	"github.com/goliatone/go-parampanel/pkg/params"
)

// WidgetType identifies the control a renderer should produce for an
// attribute. Renderers translate these into their own vocabulary.
type WidgetType string

const (
	WidgetLiteralInput WidgetType = "literal-input"
	WidgetSelect       WidgetType = "select"
	WidgetCheckbox     WidgetType = "checkbox"
	WidgetFloatSlider  WidgetType = "float-slider"
	WidgetIntSlider    WidgetType = "int-slider"
	WidgetRangeSlider  WidgetType = "range-slider"
	WidgetMultiSelect  WidgetType = "multi-select"
	WidgetDatePicker   WidgetType = "date-picker"

	// WidgetStaticText is the heading control carrying the target's
	// name. It is never produced per attribute.
	WidgetStaticText WidgetType = "static-text"
)

// WidgetFor maps an attribute kind to its widget type. The switch is
// exhaustive over the params.Kind enumeration; kinds without a mapping
// (KindAction) return ErrNoWidget.
func WidgetFor(kind params.Kind) (WidgetType, error) {
	switch kind {
	case params.KindValue, params.KindDict:
		return WidgetLiteralInput, nil
	case params.KindSelector, params.KindFile:
		return WidgetSelect, nil
	case params.KindBoolean:
		return WidgetCheckbox, nil
	case params.KindNumber:
		return WidgetFloatSlider, nil
	case params.KindInteger:
		return WidgetIntSlider, nil
	case params.KindRange:
		return WidgetRangeSlider, nil
	case params.KindMultiSelector:
		return WidgetMultiSelect, nil
	case params.KindDate:
		return WidgetDatePicker, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoWidget, kind)
}
