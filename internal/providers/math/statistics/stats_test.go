package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
)

func data(xs ...float64) common.Args {
	return common.NewArgs(map[string]common.Value{"numbers": common.SequenceValue(xs)})
}

func TestStatistics(t *testing.T) {
	s := &StatsOps{}

	tests := []struct {
		name     string
		fn       common.ComputeFunc
		args     common.Args
		expected float64
	}{
		{"mean", s.Mean, data(1, 2, 3, 4), 2.5},
		{"mean single", s.Mean, data(7), 7},
		{"median odd", s.Median, data(5, 1, 3), 3},
		{"median even", s.Median, data(4, 1, 3, 2), 2.5},
		{"stdev", s.Stdev, data(10, 20, 30, 40, 50), 15.811388300841896},
		{"stdev constant", s.Stdev, data(3, 3, 3), 0},
		{"variance", s.Variance, data(2, 4, 4, 4, 5, 5, 7, 9), 4.571428571428571},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.fn(tt.args)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, v, 1e-9)
		})
	}
}

func TestMedianLeavesInputUntouched(t *testing.T) {
	input := []float64{3, 1, 2}
	args := common.NewArgs(map[string]common.Value{"numbers": common.SequenceValue(input)})

	_, err := (&StatsOps{}).Median(args)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, input)
}

func TestMinMax(t *testing.T) {
	v, err := (&StatsOps{}).MinMax(data(4, -2, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"min": -2, "max": 9}, v)
}

func TestSpecsRequireData(t *testing.T) {
	for _, spec := range (&StatsOps{}).Specs() {
		t.Run(spec.Name, func(t *testing.T) {
			err := common.Validate(spec.Checks, data())
			assert.Equal(t, "InsufficientData", string(common.KindOf(err)))
		})
	}
}
