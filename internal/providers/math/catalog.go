package math

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
)

// legacyNames maps tool names used by earlier math servers onto the catalog
var legacyNames = map[string]string{
	"abs_val":             "abs",
	"round_num":           "round",
	"degrees_to_radians":  "deg_to_rad",
	"radians_to_degrees":  "rad_to_deg",
	"absolute_difference": "abs_diff",
	"random_int":          "random",
	"divide_multiple":     "divide",
}

// Catalog is the immutable set of operations. It is safe for concurrent
// use because nothing mutates it after NewCatalog returns.
type Catalog struct {
	specs   map[string]common.Spec
	order   []string
	aliases map[string]string
}

// NewCatalog indexes the given specs, rejecting duplicate or incomplete
// entries
func NewCatalog(specs ...common.Spec) (*Catalog, error) {
	c := &Catalog{
		specs:   make(map[string]common.Spec, len(specs)),
		order:   make([]string, 0, len(specs)),
		aliases: make(map[string]string, len(legacyNames)),
	}

	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("operation name cannot be empty")
		}
		if spec.Compute == nil {
			return nil, fmt.Errorf("operation %s has no compute function", spec.Name)
		}
		if _, exists := c.specs[spec.Name]; exists {
			return nil, fmt.Errorf("duplicate operation: %s", spec.Name)
		}
		c.specs[spec.Name] = spec
		c.order = append(c.order, spec.Name)
	}

	for alias, target := range legacyNames {
		if _, ok := c.specs[target]; ok {
			c.aliases[alias] = target
		}
	}

	return c, nil
}

// Lookup finds an operation by name or legacy alias. Names are matched
// case-insensitively after trimming.
func (c *Catalog) Lookup(name string) (common.Spec, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if spec, ok := c.specs[key]; ok {
		return spec, true
	}
	if target, ok := c.aliases[key]; ok {
		return c.specs[target], true
	}
	return common.Spec{}, false
}

// Specs returns every operation in registration order
func (c *Catalog) Specs() []common.Spec {
	out := make([]common.Spec, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.specs[name])
	}
	return out
}

// Names returns every operation name in registration order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of operations
func (c *Catalog) Len() int {
	return len(c.order)
}
