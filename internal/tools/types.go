// Package tools declares the tool set the adapter exposes to its MCP
// host and the shared Tool/Registry types used to dispatch them.
package tools

import (
	"context"
	"fmt"
	"sort"
)

// Tool represents a callable operation the host can invoke
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Execute     func(ctx context.Context, input map[string]interface{}) (string, error)
}

// Registry holds registered tools
type Registry struct {
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool; duplicate names are rejected
func (r *Registry) Register(t Tool) error {
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool already registered: %s", t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// Get returns a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns every registered tool, sorted by name
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// stringArg extracts an optional string argument.
func stringArg(input map[string]interface{}, key string) string {
	v, _ := input[key].(string)
	return v
}

// floatArg extracts an optional numeric argument. JSON numbers arrive as
// float64; integers sent by stricter hosts are accepted too.
func floatArg(input map[string]interface{}, key string) (float64, bool) {
	switch v := input[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
