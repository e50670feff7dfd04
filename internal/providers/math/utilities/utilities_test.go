package utilities

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
)

func TestConstant(t *testing.T) {
	c := &ConstantsOps{}

	for name, expected := range map[string]float64{"pi": gomath.Pi, "e": gomath.E} {
		v, err := c.Constant(common.NewArgs(map[string]common.Value{"name": common.TextValue(name)}))
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}

	spec := c.Specs()[0]
	err := common.Validate(spec.Checks, common.NewArgs(map[string]common.Value{"name": common.TextValue("phi")}))
	assert.Equal(t, "DomainError", string(common.KindOf(err)))
}

func bounds(lo, hi float64) common.Args {
	return common.NewArgs(map[string]common.Value{
		"min": common.NumberValue(lo),
		"max": common.NumberValue(hi),
	})
}

func TestRandom(t *testing.T) {
	t.Run("uses injected source", func(t *testing.T) {
		var asked int64
		r := &RandomOps{Int64N: func(n int64) int64 {
			asked = n
			return 0
		}}

		v, err := r.Random(bounds(-2, 2))
		require.NoError(t, err)
		assert.Equal(t, int64(-2), v)
		assert.Equal(t, int64(5), asked)
	})

	t.Run("single value range", func(t *testing.T) {
		v, err := (&RandomOps{}).Random(bounds(4, 4))
		require.NoError(t, err)
		assert.Equal(t, int64(4), v)
	})

	t.Run("checks", func(t *testing.T) {
		spec := (&RandomOps{}).Specs()[0]
		assert.Equal(t, "DomainError", string(common.KindOf(common.Validate(spec.Checks, bounds(3, 1)))))
		assert.Equal(t, "DomainError", string(common.KindOf(common.Validate(spec.Checks, bounds(0.5, 1)))))
		assert.NoError(t, common.Validate(spec.Checks, bounds(1, 3)))
	})
}
