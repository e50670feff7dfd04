package statistics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
)

// StatsOps handles statistical operations using gonum
type StatsOps struct{}

// Specs returns statistics operation definitions
func (s *StatsOps) Specs() []common.Spec {
	data := []common.Param{
		common.Sequence("numbers", "Data values").WithAliases("data"),
	}

	return []common.Spec{
		{
			Name:        "mean",
			Title:       "Mean",
			Description: "Arithmetic mean of a data set",
			Group:       "statistics",
			Params:      data,
			Checks:      []common.Check{common.MinLength("numbers", 1)},
			Compute:     s.Mean,
		},
		{
			Name:        "median",
			Title:       "Median",
			Description: "Middle value of a data set (mean of the two middle values for even sizes)",
			Group:       "statistics",
			Params:      data,
			Checks:      []common.Check{common.MinLength("numbers", 1)},
			Compute:     s.Median,
		},
		{
			Name:        "stdev",
			Title:       "Standard Deviation",
			Description: "Sample standard deviation (n-1 denominator)",
			Group:       "statistics",
			Params:      data,
			Checks:      []common.Check{common.MinLength("numbers", 2)},
			Compute:     s.Stdev,
		},
		{
			Name:        "variance",
			Title:       "Variance",
			Description: "Sample variance (n-1 denominator)",
			Group:       "statistics",
			Params:      data,
			Checks:      []common.Check{common.MinLength("numbers", 2)},
			Compute:     s.Variance,
		},
		{
			Name:        "min_max",
			Title:       "Minimum and Maximum",
			Description: "Smallest and largest value of a data set",
			Group:       "statistics",
			Params:      data,
			Checks:      []common.Check{common.MinLength("numbers", 1)},
			Compute:     s.MinMax,
			Returns:     "object",
		},
	}
}

// Mean calculates arithmetic mean
func (s *StatsOps) Mean(args common.Args) (interface{}, error) {
	return stat.Mean(args.Sequence("numbers"), nil), nil
}

// Median calculates median
func (s *StatsOps) Median(args common.Args) (interface{}, error) {
	numbers := args.Sequence("numbers")
	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Stdev calculates sample standard deviation
func (s *StatsOps) Stdev(args common.Args) (interface{}, error) {
	return stat.StdDev(args.Sequence("numbers"), nil), nil
}

// Variance calculates sample variance
func (s *StatsOps) Variance(args common.Args) (interface{}, error) {
	return stat.Variance(args.Sequence("numbers"), nil), nil
}

// MinMax finds the extremes of the data set
func (s *StatsOps) MinMax(args common.Args) (interface{}, error) {
	numbers := args.Sequence("numbers")
	return map[string]float64{
		"min": floats.Min(numbers),
		"max": floats.Max(numbers),
	}, nil
}
