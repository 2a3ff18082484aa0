package panel

import "github.com/goliatone/go-parampanel/pkg/params"

const (
	// DefaultWidth is the container width renderers use when the
	// configuration does not override it.
	DefaultWidth = 300

	// DefaultPrecedence is the sort key assigned to attributes with no
	// declared precedence. Zero stays available for forcing attributes
	// to the top of the sheet; values above this default can group or
	// order attributes arbitrarily.
	DefaultPrecedence = 1e-8
)

// Initializer runs against the target when the panel is constructed,
// usually to seed attribute values before the first render.
type Initializer func(target params.Parameterized)

// LabelFormatter converts attribute names into widget labels.
type LabelFormatter func(name string) string

// Config collects the static panel settings. Zero values are replaced
// by defaults in New; use the With* options to customise.
type Config struct {
	// ShowLabels toggles per-widget label rendering.
	ShowLabels bool
	// DisplayThreshold hides attributes whose declared precedence sits
	// below it. Attributes without a declared precedence are always
	// shown.
	DisplayThreshold float64
	// DefaultPrecedence is the sort key for attributes with no declared
	// precedence.
	DefaultPrecedence float64
	// Initializer, when set, runs once during New.
	Initializer Initializer
	// Width is the container width hint passed to renderers.
	Width int
	// LabelFormatter formats attribute names into labels. Nil keeps the
	// raw attribute name.
	LabelFormatter LabelFormatter
}

func defaultConfig() Config {
	return Config{
		ShowLabels:        true,
		DisplayThreshold:  0,
		DefaultPrecedence: DefaultPrecedence,
		Width:             DefaultWidth,
		LabelFormatter:    DefaultLabelFormatter,
	}
}

// Option customises the panel configuration.
type Option func(*Config)

// WithShowLabels toggles per-widget labels.
func WithShowLabels(show bool) Option {
	return func(c *Config) { c.ShowLabels = show }
}

// WithDisplayThreshold hides attributes whose declared precedence is
// below the threshold.
func WithDisplayThreshold(threshold float64) Option {
	return func(c *Config) { c.DisplayThreshold = threshold }
}

// WithDefaultPrecedence overrides the sort key used for attributes
// with no declared precedence.
func WithDefaultPrecedence(precedence float64) Option {
	return func(c *Config) { c.DefaultPrecedence = precedence }
}

// WithInitializer registers a callable run against the target during
// New, before any widget is built.
func WithInitializer(init Initializer) Option {
	return func(c *Config) { c.Initializer = init }
}

// WithWidth sets the container width hint.
func WithWidth(width int) Option {
	return func(c *Config) {
		if width > 0 {
			c.Width = width
		}
	}
}

// WithLabelFormatter replaces the label formatter. Passing nil disables
// formatting so raw attribute names become labels.
func WithLabelFormatter(formatter LabelFormatter) Option {
	return func(c *Config) { c.LabelFormatter = formatter }
}
