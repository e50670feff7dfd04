package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/mathd/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, raw interface{}) *types.Result
}

// AliasProvider is implemented by providers that answer to legacy tool names
type AliasProvider interface {
	Aliases() map[string]string
}

// Observer receives per-call telemetry
type Observer interface {
	RecordToolCall(tool, status string, duration time.Duration)
	RecordToolError(tool string, kind types.ErrorKind)
}

type route struct {
	provider Provider
	tool     types.Tool
}

// Registry routes tool calls to providers. It is built once and only read
// afterwards, so concurrent calls need no locking.
type Registry struct {
	logger   *zap.Logger
	observer Observer

	services map[string]Provider
	order    []string
	routes   map[string]route
	tools    []string
	aliases  map[string]string
}

// NewRegistry indexes the given providers. Service IDs and tool names must
// be unique across providers.
func NewRegistry(logger *zap.Logger, observer Observer, providers ...Provider) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		logger:   logger,
		observer: observer,
		services: make(map[string]Provider, len(providers)),
		routes:   make(map[string]route),
		aliases:  make(map[string]string),
	}

	for _, provider := range providers {
		def := provider.Definition()
		if def.ID == "" {
			return nil, fmt.Errorf("service ID cannot be empty")
		}
		if _, exists := r.services[def.ID]; exists {
			return nil, fmt.Errorf("duplicate service: %s", def.ID)
		}
		r.services[def.ID] = provider
		r.order = append(r.order, def.ID)

		for _, tool := range def.Tools {
			if _, exists := r.routes[tool.ID]; exists {
				return nil, fmt.Errorf("duplicate tool %s in service %s", tool.ID, def.ID)
			}
			r.routes[tool.ID] = route{provider: provider, tool: tool}
			r.tools = append(r.tools, tool.ID)
		}

		if ap, ok := provider.(AliasProvider); ok {
			for alias, target := range ap.Aliases() {
				if _, known := r.routes[target]; known {
					r.aliases[alias] = target
				}
			}
		}
	}

	r.logger.Info("service registry ready",
		zap.Int("services", len(r.order)),
		zap.Int("tools", len(r.tools)),
		zap.Int("aliases", len(r.aliases)))
	return r, nil
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	p, ok := r.services[serviceID]
	return p, ok
}

// List returns all registered services, optionally filtered by category
func (r *Registry) List(category *types.Category) []types.Service {
	services := make([]types.Service, 0, len(r.order))
	for _, id := range r.order {
		def := r.services[id].Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
	}
	return services
}

// Tools returns every advertised tool in registration order
func (r *Registry) Tools() []types.Tool {
	out := make([]types.Tool, 0, len(r.tools))
	for _, id := range r.tools {
		out = append(out, r.routes[id].tool)
	}
	return out
}

// Tool resolves a tool by name, service-qualified name or legacy alias
func (r *Registry) Tool(name string) (types.Tool, bool) {
	rt, ok := r.resolve(name)
	return rt.tool, ok
}

// resolve normalizes name and finds its route
func (r *Registry) resolve(name string) (route, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if svc, rest, found := strings.Cut(key, "."); found {
		if _, known := r.services[svc]; known {
			key = rest
		}
	}
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	rt, ok := r.routes[key]
	return rt, ok
}

// UnknownToolLabel is the metrics label for calls naming no registered
// tool. The requested name only appears in logs and the error report.
const UnknownToolLabel = "unknown"

// Execute runs a tool and records the outcome. The returned result is never
// nil.
func (r *Registry) Execute(ctx context.Context, name string, raw interface{}) *types.Result {
	rt, ok := r.resolve(name)
	if !ok {
		r.logger.Debug("unknown tool requested",
			zap.String("tool", name),
			zap.String("request_id", tracing.RequestID(ctx)))
		r.record(UnknownToolLabel, types.ErrUnknownOperation, 0)
		return &types.Result{
			Success: false,
			Error: &types.ErrorReport{
				Kind:      types.ErrUnknownOperation,
				Operation: name,
				Message:   fmt.Sprintf("unknown operation: %s", name),
				Input:     name,
			},
		}
	}

	start := time.Now()
	result := rt.provider.Execute(ctx, rt.tool.ID, raw)
	elapsed := time.Since(start)

	if result == nil {
		result = &types.Result{
			Success: false,
			Error: &types.ErrorReport{
				Kind:      types.ErrInternalComputationError,
				Operation: rt.tool.ID,
				Message:   "provider returned no result",
			},
		}
	}

	if result.Success {
		r.record(rt.tool.ID, "", elapsed)
		r.logger.Debug("tool call succeeded",
			zap.String("tool", rt.tool.ID),
			zap.String("request_id", tracing.RequestID(ctx)),
			zap.Duration("duration", elapsed))
		return result
	}

	r.record(rt.tool.ID, result.Error.Kind, elapsed)
	r.logger.Info("tool call failed",
		zap.String("tool", rt.tool.ID),
		zap.String("request_id", tracing.RequestID(ctx)),
		zap.String("kind", string(result.Error.Kind)),
		zap.String("message", result.Error.Message),
		zap.Duration("duration", elapsed))
	return result
}

func (r *Registry) record(tool string, kind types.ErrorKind, elapsed time.Duration) {
	if r.observer == nil {
		return
	}
	if kind == "" {
		r.observer.RecordToolCall(tool, "success", elapsed)
		return
	}
	r.observer.RecordToolCall(tool, "error", elapsed)
	r.observer.RecordToolError(tool, kind)
}

// Discover finds the tools most relevant to a free-text intent
func (r *Registry) Discover(intent string, limit int) []types.Tool {
	type scoredTool struct {
		tool  types.Tool
		score float64
		index int
	}

	words := strings.Fields(strings.ToLower(intent))
	if len(words) == 0 || limit <= 0 {
		return []types.Tool{}
	}

	var results []scoredTool
	for i, id := range r.tools {
		rt := r.routes[id]
		score := calculateRelevance(words, rt.tool, rt.provider.Definition())
		if score > 0 {
			results = append(results, scoredTool{tool: rt.tool, score: score, index: i})
		}
	}

	// Sort by score descending, registration order on ties
	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].index < results[j].index
	})

	// Return top N
	output := make([]types.Tool, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].tool)
	}
	return output
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	categories := make(map[string]int)
	groups := make(map[string]int)

	for _, id := range r.order {
		categories[string(r.services[id].Definition().Category)]++
	}
	for _, id := range r.tools {
		if g := r.routes[id].tool.Group; g != "" {
			groups[g]++
		}
	}

	return map[string]interface{}{
		"total_services": len(r.order),
		"total_tools":    len(r.tools),
		"total_aliases":  len(r.aliases),
		"categories":     categories,
		"groups":         groups,
	}
}

func calculateRelevance(words []string, tool types.Tool, service types.Service) float64 {
	score := 0.0
	name := strings.ReplaceAll(tool.ID, "_", " ")
	desc := strings.ToLower(tool.Description)

	for _, word := range words {
		// Tool name
		if word == tool.ID {
			score += 20.0
		} else if strings.Contains(name, word) {
			score += 10.0
		}

		// Description words
		if len(word) > 2 && strings.Contains(desc, word) {
			score += 5.0
		}

		// Group
		if tool.Group != "" && strings.HasPrefix(tool.Group, word) {
			score += 3.0
		}

		// Service capabilities
		for _, cap := range service.Capabilities {
			if cap == tool.Group && strings.HasPrefix(cap, word) {
				score += 2.0
			}
		}
	}

	return score
}
