package operations

import (
	gomath "math"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// Angle units accepted by the trigonometric operations
const (
	UnitRadians = "radians"
	UnitDegrees = "degrees"
)

// TrigOps handles trigonometric operations
type TrigOps struct{}

// Specs returns trig operation definitions
func (t *TrigOps) Specs() []common.Spec {
	angle := []common.Param{
		common.Number("angle", "Angle").WithAliases("x"),
		common.Text("unit", "Unit of angle", UnitRadians, UnitDegrees),
	}
	unit := common.OneOf("unit", UnitRadians, UnitDegrees)

	return []common.Spec{
		{
			Name:        "sin",
			Title:       "Sine",
			Description: "Sine of an angle given in radians or degrees",
			Group:       "trigonometry",
			Params:      angle,
			Checks:      []common.Check{unit},
			Compute:     t.Sin,
		},
		{
			Name:        "cos",
			Title:       "Cosine",
			Description: "Cosine of an angle given in radians or degrees",
			Group:       "trigonometry",
			Params:      angle,
			Checks:      []common.Check{unit},
			Compute:     t.Cos,
		},
		{
			Name:        "tan",
			Title:       "Tangent",
			Description: "Tangent of an angle given in radians or degrees",
			Group:       "trigonometry",
			Params:      angle,
			Checks:      []common.Check{unit, tangentDefined()},
			Compute:     t.Tan,
		},
		{
			Name:        "deg_to_rad",
			Title:       "Degrees to Radians",
			Description: "Convert degrees to radians",
			Group:       "trigonometry",
			Params:      []common.Param{common.Number("x", "Angle in degrees").WithAliases("degrees")},
			Compute:     t.DegreesToRadians,
		},
		{
			Name:        "rad_to_deg",
			Title:       "Radians to Degrees",
			Description: "Convert radians to degrees",
			Group:       "trigonometry",
			Params:      []common.Param{common.Number("x", "Angle in radians").WithAliases("radians")},
			Compute:     t.RadiansToDegrees,
		},
	}
}

// tangentDefined rejects odd multiples of 90 degrees
func tangentDefined() common.Check {
	return common.Check{Name: "tangent_defined:angle", Fn: func(args common.Args) error {
		if args.Text("unit") != UnitDegrees {
			return nil
		}
		deg := args.Number("angle")
		if r := gomath.Mod(gomath.Abs(deg), 180); r == 90 {
			return common.NewError(types.ErrDomain, deg, "tangent is undefined at %v degrees", deg)
		}
		return nil
	}}
}

// Sin calculates sine
func (t *TrigOps) Sin(args common.Args) (interface{}, error) {
	if args.Text("unit") == UnitDegrees {
		s, _ := sinCosDegrees(args.Number("angle"))
		return s, nil
	}
	return gomath.Sin(args.Number("angle")), nil
}

// Cos calculates cosine
func (t *TrigOps) Cos(args common.Args) (interface{}, error) {
	if args.Text("unit") == UnitDegrees {
		_, c := sinCosDegrees(args.Number("angle"))
		return c, nil
	}
	return gomath.Cos(args.Number("angle")), nil
}

// Tan calculates tangent
func (t *TrigOps) Tan(args common.Args) (interface{}, error) {
	if args.Text("unit") == UnitDegrees {
		s, c := sinCosDegrees(args.Number("angle"))
		return s / c, nil
	}
	return gomath.Tan(args.Number("angle")), nil
}

// DegreesToRadians converts degrees to radians
func (t *TrigOps) DegreesToRadians(args common.Args) (interface{}, error) {
	return args.Number("x") * gomath.Pi / 180, nil
}

// RadiansToDegrees converts radians to degrees
func (t *TrigOps) RadiansToDegrees(args common.Args) (interface{}, error) {
	return args.Number("x") * 180 / gomath.Pi, nil
}

// sinCosDegrees returns exact values at multiples of 90 degrees, where the
// radian conversion would otherwise leave residues like 1.2e-16
func sinCosDegrees(deg float64) (float64, float64) {
	r := gomath.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	switch r {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return gomath.Sincos(r * gomath.Pi / 180)
}
