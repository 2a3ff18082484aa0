// Package jsoninit bulk-applies attribute values to a parameterized
// target from a JSON source: an explicit file, a file path named by an
// environment variable, or raw JSON held in that variable.
//
// The initializer is best-effort by contract: every failure path
// degrades to a warning on the configured logger and the call returns
// normally, applying whatever pairs it could.
package jsoninit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-logr/logr"

	"github.com/goliatone/go-parampanel/pkg/params"
)

// DefaultVarname is the environment variable consulted when no
// explicit JSON file is configured.
const DefaultVarname = "PARAM_JSON_INIT"

// Environ resolves an environment variable; it mirrors os.LookupEnv so
// tests can substitute a fixed map.
type Environ func(key string) (string, bool)

// Initializer applies JSON-sourced attribute settings to a target. It
// satisfies panel.Initializer via its Apply method.
type Initializer struct {
	varname  string
	target   string
	jsonFile string
	environ  Environ
	warn     logr.Logger
}

// Option customises an Initializer.
type Option func(*Initializer)

// WithVarname overrides the environment variable name.
func WithVarname(name string) Option {
	return func(in *Initializer) {
		if name != "" {
			in.varname = name
		}
	}
}

// WithTarget pins the key of the JSON section holding the settings.
// When unset, the target's type name is used.
func WithTarget(key string) Option {
	return func(in *Initializer) { in.target = key }
}

// WithJSONFile supplies an explicit settings file, which takes
// precedence over the environment variable.
func WithJSONFile(path string) Option {
	return func(in *Initializer) { in.jsonFile = path }
}

// WithEnviron injects the environment lookup. The default reads the
// process environment via os.LookupEnv.
func WithEnviron(environ Environ) Option {
	return func(in *Initializer) {
		if environ != nil {
			in.environ = environ
		}
	}
}

// WithWarningLogger routes non-fatal warnings to the given logger. The
// default discards them.
func WithWarningLogger(log logr.Logger) Option {
	return func(in *Initializer) { in.warn = log }
}

// New constructs an Initializer with the default variable name,
// process environment lookup, and a discarding warning logger.
func New(options ...Option) *Initializer {
	in := &Initializer{
		varname: DefaultVarname,
		environ: os.LookupEnv,
		warn:    logr.Discard(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(in)
		}
	}
	return in
}

// Apply resolves the JSON source and sets each (name, value) pair on
// the target. With no explicit file and the environment variable
// unset, the call is a silent no-op. Pairs the target rejects are
// reported as warnings; the remaining pairs still apply.
func (in *Initializer) Apply(target params.Parameterized) {
	if target == nil {
		in.warn.Info("jsoninit: target is nil, nothing to initialize")
		return
	}

	key := in.target
	if key == "" {
		key = typeNameOf(target)
	}

	var envValue string
	if in.jsonFile == "" {
		value, set := in.environ(in.varname)
		if !set {
			return
		}
		envValue = value
	}

	var raw []byte
	if in.jsonFile != "" || strings.HasSuffix(envValue, ".json") {
		path := in.jsonFile
		if path == "" {
			path = envValue
		}
		data, err := readJSONFile(path)
		if err != nil {
			in.warn.Info(fmt.Sprintf("jsoninit: could not load JSON file %q: %v", path, err))
			return
		}
		raw = data
	} else {
		raw = []byte(envValue)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		in.warn.Info(fmt.Sprintf("jsoninit: invalid JSON specification: %v", err))
		return
	}

	root, ok := parsed.(map[string]any)
	if !ok {
		in.warn.Info("jsoninit: JSON parameter specification must be a mapping")
		return
	}

	settings := root
	if section, found := root[key]; found {
		sectionMap, ok := section.(map[string]any)
		if !ok {
			in.warn.Info(fmt.Sprintf("jsoninit: section %q must be a mapping", key))
			return
		}
		settings = sectionMap
	}

	for name, value := range settings {
		if err := target.Set(name, value); err != nil {
			in.warn.Info(fmt.Sprintf("jsoninit: could not set %q: %v", name, err))
		}
	}
}

func readJSONFile(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

// typeNameOf prefers the target's own type identifier and falls back
// to its Go type name.
func typeNameOf(target params.Parameterized) string {
	if named, ok := target.(params.Named); ok {
		return named.TypeName()
	}
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}
