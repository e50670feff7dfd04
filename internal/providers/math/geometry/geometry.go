package geometry

import (
	gomath "math"

	"gonum.org/v1/gonum/floats"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
)

// Legs inside (hypotMin, hypotMax) square without overflow or underflow
const (
	hypotMin = 1e-150
	hypotMax = 1e150
)

// GeometryOps handles geometry and distance operations
type GeometryOps struct{}

// Specs returns geometry operation definitions
func (g *GeometryOps) Specs() []common.Spec {
	vectors := []common.Param{
		common.Sequence("seq1", "First point").WithAliases("point1"),
		common.Sequence("seq2", "Second point").WithAliases("point2"),
	}
	vectorChecks := []common.Check{
		common.MinLength("seq1", 1),
		common.MinLength("seq2", 1),
		common.SameLength("seq1", "seq2"),
	}

	return []common.Spec{
		{
			Name:        "hypotenuse",
			Title:       "Hypotenuse",
			Description: "Hypotenuse of a right triangle with legs a and b",
			Group:       "geometry",
			Params: []common.Param{
				common.Number("a", "First leg"),
				common.Number("b", "Second leg"),
			},
			Compute: g.Hypotenuse,
		},
		{
			Name:        "circle_area",
			Title:       "Circle Area",
			Description: "Area of a circle with radius r",
			Group:       "geometry",
			Params:      []common.Param{common.Number("r", "Radius").WithAliases("radius")},
			Checks:      []common.Check{common.NonNegative("r")},
			Compute:     g.CircleArea,
		},
		{
			Name:        "distance_2d",
			Title:       "Distance 2D",
			Description: "Euclidean distance between two points in the plane",
			Group:       "geometry",
			Params: []common.Param{
				common.Sequence("p1", "First point [x, y]").WithPack("x1", "y1"),
				common.Sequence("p2", "Second point [x, y]").WithPack("x2", "y2"),
			},
			Checks: []common.Check{
				common.ExactLength("p1", 2),
				common.ExactLength("p2", 2),
			},
			Compute: g.PointDistance,
		},
		{
			Name:        "distance_3d",
			Title:       "Distance 3D",
			Description: "Euclidean distance between two points in space",
			Group:       "geometry",
			Params: []common.Param{
				common.Sequence("p1", "First point [x, y, z]").WithPack("x1", "y1", "z1"),
				common.Sequence("p2", "Second point [x, y, z]").WithPack("x2", "y2", "z2"),
			},
			Checks: []common.Check{
				common.ExactLength("p1", 3),
				common.ExactLength("p2", 3),
			},
			Compute: g.PointDistance,
		},
		{
			Name:        "manhattan_distance",
			Title:       "Manhattan Distance",
			Description: "Sum of absolute coordinate differences between two n-dimensional points",
			Group:       "geometry",
			Params:      vectors,
			Checks:      vectorChecks,
			Compute:     g.Manhattan,
		},
		{
			Name:        "euclidean_distance",
			Title:       "Euclidean Distance",
			Description: "Straight-line distance between two n-dimensional points",
			Group:       "geometry",
			Params:      vectors,
			Checks:      vectorChecks,
			Compute:     g.Euclidean,
		},
		{
			Name:        "abs_diff",
			Title:       "Absolute Difference",
			Description: "Absolute difference |a - b|",
			Group:       "geometry",
			Params: []common.Param{
				common.Number("a", "First number"),
				common.Number("b", "Second number"),
			},
			Compute: g.AbsDiff,
		},
	}
}

// Hypotenuse calculates sqrt(a^2 + b^2)
func (g *GeometryOps) Hypotenuse(args common.Args) (interface{}, error) {
	a, b := args.Number("a"), args.Number("b")
	if squaresSafely(a) && squaresSafely(b) {
		return gomath.Sqrt(a*a + b*b), nil
	}
	return gomath.Hypot(a, b), nil
}

func squaresSafely(x float64) bool {
	ax := gomath.Abs(x)
	return ax == 0 || (ax > hypotMin && ax < hypotMax)
}

// CircleArea calculates pi * r^2
func (g *GeometryOps) CircleArea(args common.Args) (interface{}, error) {
	r := args.Number("r")
	return gomath.Pi * r * r, nil
}

// PointDistance calculates the distance between p1 and p2
func (g *GeometryOps) PointDistance(args common.Args) (interface{}, error) {
	return floats.Distance(args.Sequence("p1"), args.Sequence("p2"), 2), nil
}

// Manhattan calculates the L1 distance
func (g *GeometryOps) Manhattan(args common.Args) (interface{}, error) {
	return floats.Distance(args.Sequence("seq1"), args.Sequence("seq2"), 1), nil
}

// Euclidean calculates the L2 distance
func (g *GeometryOps) Euclidean(args common.Args) (interface{}, error) {
	return floats.Distance(args.Sequence("seq1"), args.Sequence("seq2"), 2), nil
}

// AbsDiff calculates |a - b|
func (g *GeometryOps) AbsDiff(args common.Args) (interface{}, error) {
	return gomath.Abs(args.Number("a") - args.Number("b")), nil
}
