package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Conceptual-Machines/maya-agents-go/metrics"
	"github.com/rs/zerolog/log"
)

// ToolRegistry holds the tools an agent may call
type ToolRegistry struct {
	tools map[string]Tool
	mu    sync.RWMutex
}

func NewToolRegistry(tools ...Tool) *ToolRegistry {
	r := &ToolRegistry{
		tools: make(map[string]Tool),
	}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

func (r *ToolRegistry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

func (r *ToolRegistry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *ToolRegistry) HasTool(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns the registered tools sorted by name
func (r *ToolRegistry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// CallTool invokes a tool by name and records call metrics
func (r *ToolRegistry) CallTool(ctx context.Context, call ToolCall) ToolResult {
	tool, ok := r.Get(call.Name)
	if !ok {
		metrics.ToolCallsTotal.WithLabelValues(call.Name, "not_found").Inc()
		return ToolResult{Error: fmt.Errorf("tool not found: %s", call.Name)}
	}

	start := time.Now()
	result := tool.Call(ctx, call)
	metrics.ToolLatencySeconds.WithLabelValues(call.Name).Observe(time.Since(start).Seconds())

	outcome := "success"
	if result.Error != nil {
		outcome = "error"
		log.Warn().Err(result.Error).Str("tool", call.Name).Str("caller", call.Caller).Msg("🔧 tool call failed")
	} else {
		log.Debug().Str("tool", call.Name).Str("caller", call.Caller).Msgf("🔧 tool call completed in %v", time.Since(start))
	}
	metrics.ToolCallsTotal.WithLabelValues(call.Name, outcome).Inc()
	return result
}
