// Package registry holds the static tool tables. One registry is built
// per credential scope at startup; the dispatcher selects a registry once
// per session and never consults scope again.
package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/thenvoi/mcp-server/internal/protocol"
)

// Handler executes one tool call. It performs exactly one logical
// operation against the platform and returns the textual payload to
// forward to the caller. Failures are *ValidationError (caught before any
// remote call) or *platform.APIError (the platform's verdict).
type Handler func(ctx context.Context, args Args) (string, error)

// Tool is one registered tool definition.
type Tool struct {
	Name        string
	Description string
	Schema      protocol.InputSchema
	Handler     Handler
}

// Registry is a read-only-after-startup table of tools for one scope.
type Registry struct {
	tools map[string]Tool
	names []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool definition. Duplicate names are a programming
// error and panic at startup.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name]; exists {
		panic(fmt.Sprintf("registry: duplicate tool %q", t.Name))
	}
	r.tools[t.Name] = t
	r.names = append(r.names, t.Name)
	sort.Strings(r.names)
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns all tool names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// List returns the advertised tool descriptors in sorted name order.
func (r *Registry) List() []protocol.Tool {
	out := make([]protocol.Tool, 0, len(r.names))
	for _, name := range r.names {
		t := r.tools[name]
		out = append(out, protocol.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Schema,
		})
	}
	return out
}

// Count returns the number of registered tools.
func (r *Registry) Count() int { return len(r.tools) }
