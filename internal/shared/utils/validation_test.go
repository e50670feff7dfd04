package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	v := DefaultJSONValidator()

	t.Run("object", func(t *testing.T) {
		out, err := v.Decode([]byte(`{"a": 1, "b": [2, 3]}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"a": 1.0, "b": []interface{}{2.0, 3.0}}, out)
	})

	t.Run("empty body", func(t *testing.T) {
		out, err := v.Decode([]byte("  "))
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("repairs trailing comma", func(t *testing.T) {
		out, err := v.Decode([]byte(`{"numbers": [1, 2, 3,]}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"numbers": []interface{}{1.0, 2.0, 3.0}}, out)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := NewJSONSizeValidator(8).Decode([]byte(`{"a": 12345}`))
		assert.ErrorContains(t, err, "exceeds maximum")
	})

	t.Run("too deep", func(t *testing.T) {
		body := strings.Repeat("[", MaxJSONDepth+2) + strings.Repeat("]", MaxJSONDepth+2)
		_, err := v.Decode([]byte(body))
		assert.ErrorContains(t, err, "nesting depth")
	})
}

func TestValidateToolID(t *testing.T) {
	assert.NoError(t, ValidateToolID("math.add", "tool", true))
	assert.NoError(t, ValidateToolID(" deg_to_rad ", "tool", true))
	assert.Error(t, ValidateToolID("", "tool", true))
	assert.Error(t, ValidateToolID("add;rm", "tool", true))
	assert.Error(t, ValidateToolID(strings.Repeat("a", MaxToolIDLength+1), "tool", true))
	assert.NoError(t, ValidateToolID("", "tool", false))
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery("average of some numbers"))
	assert.Error(t, ValidateQuery("   "))
	assert.Error(t, ValidateQuery("a          b"))
	assert.Error(t, ValidateQuery("bad\x00query"))
}
