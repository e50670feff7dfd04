package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

func numbers(kv ...interface{}) Args {
	values := map[string]Value{}
	for i := 0; i+1 < len(kv); i += 2 {
		name := kv[i].(string)
		switch v := kv[i+1].(type) {
		case float64:
			values[name] = NumberValue(v)
		case []float64:
			values[name] = SequenceValue(v)
		case string:
			values[name] = TextValue(v)
		}
	}
	return NewArgs(values)
}

func TestChecks(t *testing.T) {
	tests := []struct {
		name  string
		check Check
		args  Args
		kind  types.ErrorKind
	}{
		{"non zero passes", NonZero("b"), numbers("b", 2.0), ""},
		{"non zero fails", NonZero("b"), numbers("b", 0.0), types.ErrDivisionByZero},
		{"zero tail passes on leading zero", NonZeroTail("n"), numbers("n", []float64{0, 2}), ""},
		{"zero tail fails", NonZeroTail("n"), numbers("n", []float64{4, 2, 0}), types.ErrDivisionByZero},
		{"non negative accepts zero", NonNegative("x"), numbers("x", 0.0), ""},
		{"non negative fails", NonNegative("x"), numbers("x", -1.0), types.ErrDomain},
		{"positive fails on zero", Positive("x"), numbers("x", 0.0), types.ErrDomain},
		{"log base absent", LogBase("base"), numbers(), ""},
		{"log base one", LogBase("base"), numbers("base", 1.0), types.ErrDomain},
		{"log base negative", LogBase("base"), numbers("base", -2.0), types.ErrDomain},
		{"whole passes", Whole("n"), numbers("n", 4.0), ""},
		{"whole fails", Whole("n"), numbers("n", 4.5), types.ErrDomain},
		{"safe integer fails", SafeInteger("n"), numbers("n", 1e17), types.ErrOverflowRisk},
		{"safe integer passes below 2^53", SafeInteger("n"), numbers("n", float64(1<<53-1)), ""},
		{"safe integer rejects 2^53", SafeInteger("n"), numbers("n", float64(1<<53)), types.ErrOverflowRisk},
		{"safe integer rejects -2^53", SafeInteger("n"), numbers("n", -float64(1<<53)), types.ErrOverflowRisk},
		{"ceiling passes at limit", Ceiling("n", 170), numbers("n", 170.0), ""},
		{"ceiling fails", Ceiling("n", 170), numbers("n", 171.0), types.ErrOverflowRisk},
		{"min length fails", MinLength("d", 2), numbers("d", []float64{5}), types.ErrInsufficientData},
		{"exact length fails", ExactLength("p", 2), numbers("p", []float64{1, 2, 3}), types.ErrDimensionMismatch},
		{"same length fails", SameLength("a", "b"), numbers("a", []float64{1, 2}, "b", []float64{3, 4, 5}), types.ErrDimensionMismatch},
		{"any non zero passes", AnyNonZero("a", "b"), numbers("a", 0.0, "b", 3.0), ""},
		{"any non zero fails", AnyNonZero("a", "b"), numbers("a", 0.0, "b", 0.0), types.ErrDomain},
		{"one of passes", OneOf("unit", "radians", "degrees"), numbers("unit", "degrees"), ""},
		{"one of fails", OneOf("unit", "radians", "degrees"), numbers("unit", "grads"), types.ErrDomain},
		{"ordered fails", Ordered("min", "max"), numbers("min", 5.0, "max", 1.0), types.ErrDomain},
		{"zero to negative power", RealPower("b", "e"), numbers("b", 0.0, "e", -1.0), types.ErrDivisionByZero},
		{"negative base fractional exponent", RealPower("b", "e"), numbers("b", -8.0, "e", 0.5), types.ErrDomain},
		{"negative base whole exponent", RealPower("b", "e"), numbers("b", -2.0, "e", 3.0), ""},
		{"range fails", Range("d", -15, 15), numbers("d", 16.0), types.ErrDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check.Fn(tt.args)
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestValidateShortCircuits(t *testing.T) {
	calls := 0
	counting := Check{Name: "count", Fn: func(Args) error {
		calls++
		return nil
	}}

	err := Validate([]Check{counting, NonZero("b"), counting}, numbers("b", 0.0))
	require.Error(t, err)
	assert.Equal(t, types.ErrDivisionByZero, KindOf(err))
	assert.Equal(t, 1, calls)

	require.NoError(t, Validate([]Check{counting, counting}, numbers()))
	assert.Equal(t, 3, calls)
}
