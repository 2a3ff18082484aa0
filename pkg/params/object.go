package params

import (
	"fmt"
	"sync"
)

// Parameterized is the contract the panel adapter consumes: an ordered,
// named attribute set with validating assignment. Object satisfies it;
// callers with their own attribute storage can implement it directly.
type Parameterized interface {
	// Specs returns the attribute specs in declaration order.
	Specs() []Spec
	// Get returns the current value of the named attribute.
	Get(name string) (any, error)
	// Set assigns the named attribute, rejecting invalid values with a
	// descriptive error.
	Set(name string, value any) error
}

// Named is implemented by targets that expose a type-level identifier,
// used by the JSON initializer to pick its settings section.
type Named interface {
	TypeName() string
}

// Event describes one attribute mutation.
type Event struct {
	Name string
	Old  any
	New  any
}

// Watcher observes attribute mutations.
type Watcher func(Event)

// Watchable is implemented by targets that support mutation callbacks.
// Interactive renderers use it to refresh controls when an attribute
// changes behind their back.
type Watchable interface {
	Watch(name string, w Watcher)
}

var (
	instanceMu     sync.Mutex
	instanceCounts = map[string]int{}
)

func nextInstanceName(typeName string) string {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instanceCounts[typeName]++
	return fmt.Sprintf("%s%05d", typeName, instanceCounts[typeName])
}

// Object is the concrete attribute container. Every object carries a
// `name` attribute identifying the instance; when the supplied specs do
// not declare one, a constant string attribute is added with a
// generated "<TypeName>NNNNN" default.
type Object struct {
	typeName string
	specs    []Spec
	byName   map[string]Spec
	values   map[string]any
	watchers map[string][]Watcher
}

// NewObject builds an Object of the given type name from the supplied
// specs, seeding every attribute with its default value.
func NewObject(typeName string, specs ...Spec) (*Object, error) {
	if typeName == "" {
		return nil, fmt.Errorf("params: type name is required")
	}

	obj := &Object{
		typeName: typeName,
		byName:   make(map[string]Spec, len(specs)+1),
		values:   make(map[string]any, len(specs)+1),
		watchers: make(map[string][]Watcher),
	}

	if !declaresName(specs) {
		nameSpec := String{
			Meta:    Meta{Name: "name", Constant: true, Doc: "Instance identifier."},
			Default: nextInstanceName(typeName),
		}
		specs = append([]Spec{nameSpec}, specs...)
	}

	for _, spec := range specs {
		meta := spec.Describe()
		if meta.Name == "" {
			return nil, fmt.Errorf("params: spec with empty name")
		}
		if _, exists := obj.byName[meta.Name]; exists {
			return nil, fmt.Errorf("params: duplicate attribute %q", meta.Name)
		}
		obj.specs = append(obj.specs, spec)
		obj.byName[meta.Name] = spec
		obj.values[meta.Name] = spec.DefaultValue()
	}

	return obj, nil
}

// MustNewObject panics when construction fails. Useful for tests and
// package-level fixtures.
func MustNewObject(typeName string, specs ...Spec) *Object {
	obj, err := NewObject(typeName, specs...)
	if err != nil {
		panic(err)
	}
	return obj
}

func declaresName(specs []Spec) bool {
	for _, spec := range specs {
		if spec.Describe().Name == "name" {
			return true
		}
	}
	return false
}

// TypeName reports the type-level identifier supplied at construction.
func (o *Object) TypeName() string { return o.typeName }

// Name returns the instance's `name` attribute value.
func (o *Object) Name() string {
	v, _ := o.values["name"].(string)
	return v
}

// Specs returns the attribute specs in declaration order.
func (o *Object) Specs() []Spec {
	out := make([]Spec, len(o.specs))
	copy(out, o.specs)
	return out
}

// Spec returns the named attribute spec.
func (o *Object) Spec(name string) (Spec, bool) {
	spec, ok := o.byName[name]
	return spec, ok
}

// Get returns the current value of the named attribute.
func (o *Object) Get(name string) (any, error) {
	if _, ok := o.byName[name]; !ok {
		return nil, fmt.Errorf("params: %s has no attribute %q", o.typeName, name)
	}
	return o.values[name], nil
}

// Set validates and assigns the named attribute, then notifies
// watchers. Constant attributes reject assignment.
func (o *Object) Set(name string, value any) error {
	spec, ok := o.byName[name]
	if !ok {
		return fmt.Errorf("params: %s has no attribute %q", o.typeName, name)
	}
	meta := spec.Describe()
	if meta.Constant {
		return fmt.Errorf("params: attribute %q is constant", name)
	}
	if err := spec.Validate(value); err != nil {
		return err
	}

	old := o.values[name]
	o.values[name] = value
	for _, w := range o.watchers[name] {
		w(Event{Name: name, Old: old, New: value})
	}
	return nil
}

// Watch registers a mutation callback for the named attribute.
func (o *Object) Watch(name string, w Watcher) {
	if w == nil {
		return
	}
	o.watchers[name] = append(o.watchers[name], w)
}
