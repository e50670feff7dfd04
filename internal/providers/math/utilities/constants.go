package utilities

import (
	gomath "math"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
)

// Constants maps the supported constant names to their values
var Constants = map[string]float64{
	"pi": gomath.Pi,
	"e":  gomath.E,
}

// ConstantsOps provides mathematical constants
type ConstantsOps struct{}

// Specs returns constant operation definitions
func (c *ConstantsOps) Specs() []common.Spec {
	return []common.Spec{
		{
			Name:        "constant",
			Title:       "Mathematical Constant",
			Description: "Value of a named constant: pi or e",
			Group:       "constants",
			Params:      []common.Param{common.Text("name", "Constant name", "pi", "e")},
			Checks:      []common.Check{common.OneOf("name", "pi", "e")},
			Compute:     c.Constant,
		},
	}
}

// Constant returns the named constant
func (c *ConstantsOps) Constant(args common.Args) (interface{}, error) {
	return Constants[args.Text("name")], nil
}
