package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thenvoi/mcp-server/internal/protocol"
)

// ValidationError is a malformed or missing argument, caught before any
// remote call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ValidateArgs checks provided arguments against a tool schema: every
// required argument present, no undeclared arguments, and basic type and
// enum conformance. Handlers run only after this passes.
func ValidateArgs(schema protocol.InputSchema, args map[string]any) error {
	for _, name := range schema.Required {
		if _, ok := args[name]; !ok {
			return Validationf("missing required argument %q", name)
		}
	}

	for name, value := range args {
		prop, declared := schema.Properties[name]
		if !declared {
			return Validationf("unknown argument %q (expected: %s)", name, strings.Join(propertyNames(schema), ", "))
		}
		if err := checkType(name, prop, value); err != nil {
			return err
		}
	}

	return nil
}

func checkType(name string, prop protocol.Property, value any) error {
	switch prop.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return Validationf("argument %q must be a string", name)
		}
		if len(prop.Enum) > 0 && !containsFold(prop.Enum, s) {
			return Validationf("argument %q must be one of: %s", name, strings.Join(prop.Enum, ", "))
		}
	case "number":
		if _, ok := value.(float64); !ok {
			return Validationf("argument %q must be a number", name)
		}
	case "integer":
		f, ok := value.(float64)
		if !ok || f != float64(int64(f)) {
			return Validationf("argument %q must be an integer", name)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return Validationf("argument %q must be a boolean", name)
		}
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func propertyNames(schema protocol.InputSchema) []string {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
