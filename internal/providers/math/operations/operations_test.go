package operations

import (
	gomath "math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
)

func nums(kv ...interface{}) common.Args {
	values := make(map[string]common.Value)
	for i := 0; i < len(kv); i += 2 {
		name := kv[i].(string)
		switch v := kv[i+1].(type) {
		case float64:
			values[name] = common.NumberValue(v)
		case []float64:
			values[name] = common.SequenceValue(v)
		case string:
			values[name] = common.TextValue(v)
		}
	}
	return common.NewArgs(values)
}

func compute(t *testing.T, fn common.ComputeFunc, args common.Args) interface{} {
	t.Helper()
	v, err := fn(args)
	require.NoError(t, err)
	return v
}

func TestArithmetic(t *testing.T) {
	a := &ArithmeticOps{}

	tests := []struct {
		name     string
		fn       common.ComputeFunc
		args     common.Args
		expected float64
	}{
		{"add", a.Add, nums("numbers", []float64{1, 2, 3}), 6},
		{"subtract", a.Subtract, nums("numbers", []float64{10, 3, 2}), 5},
		{"subtract single", a.Subtract, nums("numbers", []float64{4}), 4},
		{"multiply", a.Multiply, nums("numbers", []float64{2, 3, 4}), 24},
		{"divide", a.Divide, nums("numbers", []float64{100, 5, 2}), 10},
		{"modulo", a.Modulo, nums("a", 7.0, "b", 3.0), 1},
		{"modulo negative dividend", a.Modulo, nums("a", -7.0, "b", 3.0), 2},
		{"modulo negative divisor", a.Modulo, nums("a", 7.0, "b", -3.0), -2},
		{"modulo exact", a.Modulo, nums("a", -6.0, "b", 3.0), 0},
		{"power", a.Power, nums("base", 2.0, "exponent", 0.5), gomath.Sqrt2},
		{"sqrt", a.Sqrt, nums("x", 9.0), 3},
		{"natural log", a.Log, nums("x", 1.0), 0},
		{"log base 2", a.Log, nums("x", 1024.0, "base", 2.0), 10},
		{"log10", a.Log10, nums("x", 0.01), -2},
		{"abs", a.Abs, nums("x", -4.0), 4},
		{"floor", a.Floor, nums("x", 2.7), 2},
		{"ceil", a.Ceil, nums("x", -2.7), -2},
		{"round default", a.Round, nums("x", 2.4), 2},
		{"round half even", a.Round, nums("x", 3.5), 4},
		{"round digits", a.Round, nums("x", 2.675, "digits", 2.0), 2.67},
		{"round negative digits", a.Round, nums("x", 1550.0, "digits", -2.0), 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, compute(t, tt.fn, tt.args), 1e-12)
		})
	}
}

func TestFactorial(t *testing.T) {
	a := &ArithmeticOps{}

	assert.Equal(t, "1", compute(t, a.Factorial, nums("n", 0.0)).(*big.Int).String())
	assert.Equal(t, "1", compute(t, a.Factorial, nums("n", 1.0)).(*big.Int).String())
	assert.Equal(t, "3628800", compute(t, a.Factorial, nums("n", 10.0)).(*big.Int).String())
	assert.Equal(t, "2432902008176640000", compute(t, a.Factorial, nums("n", 20.0)).(*big.Int).String())
}

func TestFactorialCeiling(t *testing.T) {
	specs := (&ArithmeticOps{FactorialLimit: 10}).Specs()

	var factorial common.Spec
	for _, s := range specs {
		if s.Name == "factorial" {
			factorial = s
		}
	}
	require.NotNil(t, factorial.Compute)

	assert.NoError(t, common.Validate(factorial.Checks, nums("n", 10.0)))
	err := common.Validate(factorial.Checks, nums("n", 11.0))
	assert.Equal(t, "OverflowRisk", string(common.KindOf(err)))
}

func TestIntegerOps(t *testing.T) {
	a := &ArithmeticOps{}

	assert.Equal(t, int64(6), compute(t, a.GCD, nums("a", 48.0, "b", 18.0)))
	assert.Equal(t, int64(5), compute(t, a.GCD, nums("a", 0.0, "b", -5.0)))
	assert.Equal(t, "12", compute(t, a.LCM, nums("a", -4.0, "b", 6.0)).(*big.Int).String())
	assert.Equal(t, "0", compute(t, a.LCM, nums("a", 0.0, "b", 6.0)).(*big.Int).String())

	// The product exceeds int64 but the result stays exact
	lcm := compute(t, a.LCM, nums("a", 4503599627370496.0, "b", 4503599627370495.0)).(*big.Int)
	expected := new(big.Int).Mul(big.NewInt(4503599627370496), big.NewInt(4503599627370495))
	assert.Equal(t, expected.String(), lcm.String())
}

func TestTrig(t *testing.T) {
	tr := &TrigOps{}

	tests := []struct {
		name     string
		fn       common.ComputeFunc
		args     common.Args
		expected float64
	}{
		{"sin 30 degrees", tr.Sin, nums("angle", 30.0, "unit", UnitDegrees), 0.5},
		{"sin -90 degrees", tr.Sin, nums("angle", -90.0, "unit", UnitDegrees), -1},
		{"cos 90 degrees exact", tr.Cos, nums("angle", 90.0, "unit", UnitDegrees), 0},
		{"cos 720 degrees", tr.Cos, nums("angle", 720.0, "unit", UnitDegrees), 1},
		{"sin pi radians", tr.Sin, nums("angle", gomath.Pi, "unit", UnitRadians), gomath.Sin(gomath.Pi)},
		{"tan 180 degrees", tr.Tan, nums("angle", 180.0, "unit", UnitDegrees), 0},
		{"tan radians", tr.Tan, nums("angle", 1.0, "unit", UnitRadians), gomath.Tan(1)},
		{"deg to rad", tr.DegreesToRadians, nums("x", 90.0), gomath.Pi / 2},
		{"rad to deg", tr.RadiansToDegrees, nums("x", gomath.Pi/4), 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, compute(t, tt.fn, tt.args), 1e-12)
		})
	}

	// Exact zero, not a floating residue
	assert.Equal(t, 0.0, compute(t, tr.Cos, nums("angle", 90.0, "unit", UnitDegrees)))
}

func TestTangentDefined(t *testing.T) {
	check := tangentDefined()

	assert.Error(t, check.Fn(nums("angle", 90.0, "unit", UnitDegrees)))
	assert.Error(t, check.Fn(nums("angle", -270.0, "unit", UnitDegrees)))
	assert.NoError(t, check.Fn(nums("angle", 180.0, "unit", UnitDegrees)))
	assert.NoError(t, check.Fn(nums("angle", 90.0, "unit", UnitRadians)))
}
