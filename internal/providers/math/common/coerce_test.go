package common

import (
	"encoding/json"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

func TestCoerceNumber(t *testing.T) {
	t.Run("accepts native numerics", func(t *testing.T) {
		tests := []struct {
			name string
			raw  interface{}
			want float64
		}{
			{"float64", 3.5, 3.5},
			{"float32", float32(0.5), 0.5},
			{"int", 42, 42},
			{"int64", int64(-7), -7},
			{"uint8", uint8(200), 200},
			{"json number", json.Number("1e3"), 1000},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := CoerceNumber(tt.raw)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("trims numeric strings", func(t *testing.T) {
		for raw, want := range map[string]float64{
			" 42 ":    42,
			"\t-3.25": -3.25,
			"1e-3":    0.001,
			".5":      0.5,
			"+7":      7,
			"5.":      5,
		} {
			got, err := CoerceNumber(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, got, raw)
		}
	})

	t.Run("rejects non numeric input", func(t *testing.T) {
		for _, raw := range []interface{}{
			"abc", "", "   ", "12abc", "1,000", "0x10", "1_000", "NaN", "Infinity", "inf",
			"1e400", true, false, nil, map[string]interface{}{}, []interface{}{1},
			gomath.NaN(), gomath.Inf(1), gomath.Inf(-1),
		} {
			_, err := CoerceNumber(raw)
			require.Error(t, err, "%v", raw)
			assert.Equal(t, types.ErrInvalidNumber, KindOf(err), "%v", raw)
		}
	})

	t.Run("cites raw value", func(t *testing.T) {
		_, err := CoerceNumber("abc")
		require.Error(t, err)
		assert.Equal(t, "abc", asError(err).Input)
		assert.Contains(t, err.Error(), `"abc"`)
	})
}

func TestCoerceSequence(t *testing.T) {
	t.Run("coerces each element", func(t *testing.T) {
		got, err := CoerceSequence([]interface{}{1, "2", 3.5, json.Number("4")})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3.5, 4}, got)
	})

	t.Run("accepts typed slices", func(t *testing.T) {
		got, err := CoerceSequence([]int{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, got)

		got, err = CoerceSequence([]float64{0.5})
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5}, got)
	})

	t.Run("accepts empty sequences", func(t *testing.T) {
		got, err := CoerceSequence([]interface{}{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("names first failing element", func(t *testing.T) {
		_, err := CoerceSequence([]interface{}{1, 2, "x", "y"})
		require.Error(t, err)
		assert.Equal(t, types.ErrInvalidSequence, KindOf(err))
		assert.Contains(t, err.Error(), "element 2")
		assert.Equal(t, "x", asError(err).Input)
	})

	t.Run("never iterates plain strings", func(t *testing.T) {
		_, err := CoerceSequence("123")
		require.Error(t, err)
		assert.Equal(t, types.ErrInvalidSequence, KindOf(err))
	})

	t.Run("never iterates byte strings", func(t *testing.T) {
		_, err := CoerceSequence([]byte("123"))
		require.Error(t, err)
		assert.Equal(t, types.ErrInvalidSequence, KindOf(err))

		_, err = CoerceSequence([]interface{}{[]byte{1, 2}})
		require.Error(t, err)
		assert.Equal(t, types.ErrInvalidSequence, KindOf(err))
	})

	t.Run("decodes array literals", func(t *testing.T) {
		got, err := CoerceSequence(" [1, 2, 3] ")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, got)
	})

	t.Run("repairs malformed array literals", func(t *testing.T) {
		got, err := CoerceSequence("[1, 2, 3,]")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, got)
	})

	t.Run("rejects mappings", func(t *testing.T) {
		_, err := CoerceSequence(map[string]interface{}{"a": 1})
		require.Error(t, err)
		assert.Equal(t, types.ErrInvalidSequence, KindOf(err))
	})

	t.Run("unwraps one level of nesting", func(t *testing.T) {
		got, err := CoerceSequence([]interface{}{[]interface{}{1, 2}})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, got)
	})

	t.Run("rejects deeper nesting", func(t *testing.T) {
		for _, raw := range []interface{}{
			[]interface{}{[]interface{}{[]interface{}{1}}},
			[]interface{}{1, []interface{}{2}},
		} {
			_, err := CoerceSequence(raw)
			require.Error(t, err)
			assert.Equal(t, types.ErrInvalidSequence, KindOf(err))
		}
	})

	t.Run("rejects null and scalars", func(t *testing.T) {
		for _, raw := range []interface{}{nil, 5, true} {
			_, err := CoerceSequence(raw)
			require.Error(t, err)
			assert.Equal(t, types.ErrInvalidSequence, KindOf(err))
		}
	})
}

func TestCoerceText(t *testing.T) {
	got, err := CoerceText("  Degrees ")
	require.NoError(t, err)
	assert.Equal(t, "degrees", got)

	_, err = CoerceText(3)
	require.Error(t, err)
	assert.Equal(t, types.ErrDomain, KindOf(err))
}
