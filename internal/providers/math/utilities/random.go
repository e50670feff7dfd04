package utilities

import (
	"math/rand/v2"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
)

// RandomOps generates random integers. It is the only catalog entry whose
// output is not a function of its input.
type RandomOps struct {
	// Int64N returns a uniform value in [0, n); nil uses math/rand/v2
	Int64N func(n int64) int64
}

// Specs returns random operation definitions
func (r *RandomOps) Specs() []common.Spec {
	return []common.Spec{
		{
			Name:        "random",
			Title:       "Random Integer",
			Description: "Random integer between min and max, both inclusive",
			Group:       "utilities",
			Params: []common.Param{
				common.Number("min", "Lower bound (inclusive)").WithAliases("min_val"),
				common.Number("max", "Upper bound (inclusive)").WithAliases("max_val"),
			},
			Checks: []common.Check{
				common.Whole("min", "max"),
				common.SafeInteger("min", "max"),
				common.Ordered("min", "max"),
			},
			Compute: r.Random,
			Returns: "integer",
		},
	}
}

// Random draws an integer from [min, max]
func (r *RandomOps) Random(args common.Args) (interface{}, error) {
	lo := int64(args.Number("min"))
	hi := int64(args.Number("max"))

	draw := r.Int64N
	if draw == nil {
		draw = rand.Int64N
	}
	return lo + draw(hi-lo+1), nil
}
