// Package tools defines the adapter's callable tool surface: schema
// declarations, argument validation, and the dispatch shared by every
// transport face.
package tools

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Definition describes one callable tool in MCP wire shape.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

// Schema declares a tool's arguments as a JSON Schema object.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Property declares a single argument.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
	Minimum     *int     `json:"minimum,omitempty"`
	Maximum     *int     `json:"maximum,omitempty"`
}

// Handler executes a tool call and returns its JSON text payload.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Tool pairs a definition with its handler.
type Tool struct {
	Definition Definition
	Handler    Handler
}

// UnknownToolError reports dispatch against a name no tool was registered
// under.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Tool '%s' not found", e.Name)
}

// ValidationError reports malformed or missing call arguments. Validation
// happens before the handler runs, so no network activity precedes it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Registry holds the tool table. Registration happens once at startup and
// the table is read-only afterwards, so no locking is needed.
type Registry struct {
	tools map[string]*Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*Tool),
	}
}

// Register adds a tool. Registering the same name twice is a wiring mistake
// and fails loudly.
func (r *Registry) Register(tool *Tool) error {
	name := tool.Definition.Name
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool '%s' is already registered", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (*Tool, error) {
	tool, exists := r.tools[name]
	if !exists {
		return nil, &UnknownToolError{Name: name}
	}
	return tool, nil
}

// List returns the registered definitions in registration order.
func (r *Registry) List() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition)
	}
	return defs
}

// Call validates args against the named tool's schema, fills in declared
// defaults, and runs the handler. The caller's argument map is not mutated.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	tool, err := r.Get(name)
	if err != nil {
		return "", err
	}

	merged := applyDefaults(tool.Definition.InputSchema, args)
	if err := validateArgs(tool.Definition.InputSchema, merged); err != nil {
		return "", err
	}

	return tool.Handler(ctx, merged)
}

// applyDefaults copies args and fills in schema defaults for absent keys.
func applyDefaults(schema Schema, args map[string]any) map[string]any {
	merged := make(map[string]any, len(args)+len(schema.Properties))
	for k, v := range args {
		merged[k] = v
	}
	for name, prop := range schema.Properties {
		if prop.Default == nil {
			continue
		}
		if _, ok := merged[name]; !ok {
			merged[name] = prop.Default
		}
	}
	return merged
}

func validateArgs(schema Schema, args map[string]any) error {
	for _, required := range schema.Required {
		if _, ok := args[required]; !ok {
			return &ValidationError{Message: fmt.Sprintf("missing required parameter: %s", required)}
		}
	}

	for name, prop := range schema.Properties {
		value, ok := args[name]
		if !ok || value == nil {
			continue
		}
		if err := validateValue(name, value, prop); err != nil {
			return err
		}
	}

	// Keys outside the schema are ignored rather than rejected; the schema
	// does not declare additionalProperties.
	return nil
}

// validateValue checks one argument against its declared type. JSON
// decoding delivers every number as float64, so integral floats satisfy
// integer-typed parameters.
func validateValue(name string, value any, prop Property) error {
	switch prop.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return &ValidationError{Message: fmt.Sprintf("parameter '%s' must be a string", name)}
		}
		if len(prop.Enum) > 0 && !slices.Contains(prop.Enum, s) {
			return &ValidationError{Message: fmt.Sprintf("parameter '%s' must be one of: %s", name, strings.Join(prop.Enum, ", "))}
		}
	case "integer":
		switch v := value.(type) {
		case float64:
			if math.Trunc(v) != v {
				return &ValidationError{Message: fmt.Sprintf("parameter '%s' must be an integer", name)}
			}
		case int, int32, int64:
		default:
			return &ValidationError{Message: fmt.Sprintf("parameter '%s' must be an integer", name)}
		}
	case "number":
		switch value.(type) {
		case float64, float32, int, int32, int64:
		default:
			return &ValidationError{Message: fmt.Sprintf("parameter '%s' must be a number", name)}
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return &ValidationError{Message: fmt.Sprintf("parameter '%s' must be a boolean", name)}
		}
	}
	return nil
}
