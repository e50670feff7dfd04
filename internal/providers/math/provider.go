package math

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
	"github.com/GriffinCanCode/mathd/internal/providers/math/geometry"
	"github.com/GriffinCanCode/mathd/internal/providers/math/operations"
	"github.com/GriffinCanCode/mathd/internal/providers/math/statistics"
	"github.com/GriffinCanCode/mathd/internal/providers/math/utilities"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// ServiceID identifies the math provider in the service registry
const ServiceID = "math"

// Option configures a Provider
type Option func(*Provider)

// WithFactorialLimit sets the largest n accepted by factorial
func WithFactorialLimit(n int) Option {
	return func(p *Provider) {
		p.arithmetic.FactorialLimit = n
	}
}

// WithRandomSource replaces the generator behind random. fn must return a
// uniform value in [0, n).
func WithRandomSource(fn func(n int64) int64) Option {
	return func(p *Provider) {
		p.random.Int64N = fn
	}
}

// Provider implements mathematical operations
type Provider struct {
	// Module instances
	arithmetic *operations.ArithmeticOps
	trig       *operations.TrigOps
	stats      *statistics.StatsOps
	geometry   *geometry.GeometryOps
	constants  *utilities.ConstantsOps
	random     *utilities.RandomOps

	catalog *Catalog
}

// NewProvider creates a modular math provider
func NewProvider(opts ...Option) (*Provider, error) {
	p := &Provider{
		arithmetic: &operations.ArithmeticOps{FactorialLimit: operations.DefaultFactorialLimit},
		trig:       &operations.TrigOps{},
		stats:      &statistics.StatsOps{},
		geometry:   &geometry.GeometryOps{},
		constants:  &utilities.ConstantsOps{},
		random:     &utilities.RandomOps{},
	}
	for _, opt := range opts {
		opt(p)
	}

	// Collect specs from all modules
	specs := []common.Spec{}
	specs = append(specs, p.arithmetic.Specs()...)
	specs = append(specs, p.trig.Specs()...)
	specs = append(specs, p.stats.Specs()...)
	specs = append(specs, p.geometry.Specs()...)
	specs = append(specs, p.constants.Specs()...)
	specs = append(specs, p.random.Specs()...)

	catalog, err := NewCatalog(specs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build math catalog: %w", err)
	}
	p.catalog = catalog
	return p, nil
}

// Catalog returns the read-only operation catalog
func (p *Provider) Catalog() *Catalog {
	return p.catalog
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	specs := p.catalog.Specs()
	tools := make([]types.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, spec.Tool())
	}

	return types.Service{
		ID:          ServiceID,
		Name:        "Math Service",
		Description: "Deterministic mathematical operations (arithmetic, trigonometry, statistics, geometry, rounding, constants)",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"arithmetic",
			"trigonometry",
			"statistics",
			"geometry",
			"rounding",
			"constants",
		},
		Tools: tools,
	}
}

// Aliases returns the legacy tool names the provider also answers to
func (p *Provider) Aliases() map[string]string {
	out := make(map[string]string, len(p.catalog.aliases))
	for k, v := range p.catalog.aliases {
		out[k] = v
	}
	return out
}

// Execute runs one call through coerce, validate and compute. It never
// panics and always returns a result with exactly one of Value or Error.
func (p *Provider) Execute(ctx context.Context, name string, raw interface{}) (result *types.Result) {
	spec, ok := p.catalog.Lookup(name)
	if !ok {
		return common.Failure(name, common.NewError(types.ErrUnknownOperation, name, "unknown operation: %s", name))
	}

	defer func() {
		if r := recover(); r != nil {
			result = common.Failure(spec.Name, common.NewError(types.ErrInternalComputationError, nil,
				"unexpected failure in %s: %v", spec.Name, r))
		}
	}()

	args, err := common.Coerce(spec, raw)
	if err != nil {
		return common.Failure(spec.Name, err)
	}

	if err := common.Validate(spec.Checks, args); err != nil {
		return common.Failure(spec.Name, err)
	}

	value, err := spec.Compute(args)
	if err != nil {
		return common.Failure(spec.Name, err)
	}
	if err := common.CheckFinite(value); err != nil {
		return common.Failure(spec.Name, err)
	}

	return common.Success(value)
}
