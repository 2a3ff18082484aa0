// Package openapi turns OpenAPI component schemas into parameter
// declarations, so an attribute panel can be generated straight from
// an API document. Vendor extensions under the x-panel prefix carry
// the metadata OpenAPI has no field for.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-parampanel/pkg/params"
)

const (
	precedenceExtensionKey = "x-panel-precedence"
	softBoundsExtensionKey = "x-panel-soft-bounds"
)

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithResolveReferences validates the document and resolves $ref
// targets before conversion.
func WithResolveReferences(resolve bool) ParserOption {
	return func(p *Parser) {
		p.resolveRefs = resolve
	}
}

// Parser converts OpenAPI documents using kin-openapi.
type Parser struct {
	resolveRefs bool
}

// NewParser constructs a Parser with the given options.
func NewParser(options ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Components parses the document and returns the parameter set of
// every object-typed component schema, keyed by component name.
func (p *Parser) Components(ctx context.Context, data []byte) (map[string][]params.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.resolveRefs,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.resolveRefs {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapi parser: document has no component schemas")
	}

	result := make(map[string][]params.Spec)
	for name, ref := range doc.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		if !schemaIsObject(ref.Value) {
			continue
		}
		specs, err := convertProperties(ref.Value)
		if err != nil {
			return nil, fmt.Errorf("openapi parser: component %s: %w", name, err)
		}
		result[name] = specs
	}
	if len(result) == 0 {
		return nil, errors.New("openapi parser: no object components found")
	}
	return result, nil
}

// Object builds a live parameterized object from the named component.
func (p *Parser) Object(ctx context.Context, data []byte, component string) (*params.Object, error) {
	components, err := p.Components(ctx, data)
	if err != nil {
		return nil, err
	}
	specs, ok := components[component]
	if !ok {
		return nil, fmt.Errorf("openapi parser: component %s not found", component)
	}
	return params.NewObject(component, specs...)
}

func schemaIsObject(schema *openapi3.Schema) bool {
	if schema.Type == nil {
		return len(schema.Properties) > 0
	}
	return schema.Type.Is("object")
}

// convertProperties maps each schema property to a parameter spec.
// Properties are emitted in name order so the set is deterministic.
func convertProperties(schema *openapi3.Schema) ([]params.Spec, error) {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]params.Spec, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		spec, err := convertProperty(name, ref.Value)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func convertProperty(name string, schema *openapi3.Schema) (params.Spec, error) {
	meta := params.Meta{
		Name:     name,
		Doc:      schema.Description,
		Constant: schema.ReadOnly,
	}
	if prec, ok := extensionFloat(schema.Extensions, precedenceExtensionKey); ok {
		meta.Precedence = params.Prec(prec)
	}

	if len(schema.Enum) > 0 {
		return convertEnum(meta, schema), nil
	}

	switch propertyType(schema) {
	case "boolean":
		value, _ := schema.Default.(bool)
		return params.Boolean{Meta: meta, Default: value}, nil

	case "integer":
		spec := params.Integer{Meta: meta, Bounds: hardBounds(schema), Soft: softBounds(schema)}
		if f, ok := floatValue(schema.Default); ok {
			spec.Default = int(f)
		}
		return spec, nil

	case "number":
		spec := params.Number{Meta: meta, Bounds: hardBounds(schema), Soft: softBounds(schema)}
		if f, ok := floatValue(schema.Default); ok {
			spec.Default = f
		}
		return spec, nil

	case "string":
		switch schema.Format {
		case "date", "date-time":
			spec := params.Date{Meta: meta}
			if text, ok := schema.Default.(string); ok {
				parsed, err := parseDate(text)
				if err != nil {
					return nil, fmt.Errorf("property %s: %w", name, err)
				}
				spec.Default = parsed
			}
			return spec, nil
		case "binary", "uri-reference":
			return params.File{Meta: meta, Default: schema.Default}, nil
		}
		value, _ := schema.Default.(string)
		return params.String{Meta: meta, Default: value}, nil

	case "array":
		return convertArray(meta, schema)

	case "object":
		value, _ := schema.Default.(map[string]any)
		return params.Dict{Meta: meta, Default: value}, nil
	}

	return params.Value{Meta: meta, Default: schema.Default}, nil
}

func convertEnum(meta params.Meta, schema *openapi3.Schema) params.Spec {
	options := make([]params.Option, 0, len(schema.Enum))
	for _, value := range schema.Enum {
		options = append(options, params.Option{
			Label: fmt.Sprintf("%v", value),
			Value: value,
		})
	}
	return params.Selector{Meta: meta, Default: schema.Default, Objects: options}
}

func convertArray(meta params.Meta, schema *openapi3.Schema) (params.Spec, error) {
	items := schema.Items
	if items == nil || items.Value == nil {
		return params.Value{Meta: meta, Default: schema.Default}, nil
	}

	if len(items.Value.Enum) > 0 {
		options := make([]params.Option, 0, len(items.Value.Enum))
		for _, value := range items.Value.Enum {
			options = append(options, params.Option{
				Label: fmt.Sprintf("%v", value),
				Value: value,
			})
		}
		spec := params.MultiSelector{Meta: meta, Objects: options}
		if picked, ok := schema.Default.([]any); ok {
			spec.Default = picked
		}
		return spec, nil
	}

	// A fixed pair of numbers is an interval.
	if propertyType(items.Value) == "number" &&
		schema.MinItems == 2 && schema.MaxItems != nil && *schema.MaxItems == 2 {
		spec := params.Range{Meta: meta, Bounds: hardBounds(items.Value), Soft: softBounds(schema)}
		if pair, ok := schema.Default.([]any); ok && len(pair) == 2 {
			low, okLow := floatValue(pair[0])
			high, okHigh := floatValue(pair[1])
			if !okLow || !okHigh {
				return nil, fmt.Errorf("property %s: interval default must be numeric", meta.Name)
			}
			spec.Default = [2]float64{low, high}
		}
		return spec, nil
	}

	return params.Value{Meta: meta, Default: schema.Default}, nil
}

func propertyType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func hardBounds(schema *openapi3.Schema) *params.Bounds {
	if schema.Min == nil && schema.Max == nil {
		return nil
	}
	bounds := &params.Bounds{}
	if schema.Min != nil {
		bounds.Low = *schema.Min
	}
	if schema.Max != nil {
		bounds.High = *schema.Max
	}
	return bounds
}

func softBounds(schema *openapi3.Schema) *params.Bounds {
	raw, ok := schema.Extensions[softBoundsExtensionKey]
	if !ok {
		return nil
	}
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return nil
	}
	low, okLow := floatValue(pair[0])
	high, okHigh := floatValue(pair[1])
	if !okLow || !okHigh {
		return nil
	}
	return &params.Bounds{Low: low, High: high}
}

func extensionFloat(extensions map[string]any, key string) (float64, bool) {
	raw, ok := extensions[key]
	if !ok {
		return 0, false
	}
	return floatValue(raw)
}

func floatValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func parseDate(text string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date default %q", text)
}
