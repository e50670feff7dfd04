package common

import (
	"encoding/json"
	"fmt"
	gomath "math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kaptinlin/jsonrepair"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// decimalPattern matches a plain decimal literal: no hex, no underscores,
// no thousands separators, no inf/nan spellings
var decimalPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// CoerceNumber converts a raw argument into a finite float64
func CoerceNumber(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, NewError(types.ErrInvalidNumber, raw, "value is null")
	case bool:
		return 0, NewError(types.ErrInvalidNumber, raw, "boolean %v is not a number", v)
	case float64:
		return finite(v, raw)
	case float32:
		return finite(float64(v), raw)
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return parseDecimal(string(v), raw)
	case string:
		return parseDecimal(v, raw)
	default:
		return 0, NewError(types.ErrInvalidNumber, raw, "%s is not a number", describe(raw))
	}
}

func finite(x float64, raw interface{}) (float64, error) {
	if gomath.IsNaN(x) {
		return 0, NewError(types.ErrInvalidNumber, raw, "NaN is not a valid number")
	}
	if gomath.IsInf(x, 0) {
		return 0, NewError(types.ErrInvalidNumber, raw, "infinite values are not allowed")
	}
	return x, nil
}

func parseDecimal(s string, raw interface{}) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, NewError(types.ErrInvalidNumber, raw, "empty string is not a number")
	}
	if !decimalPattern.MatchString(trimmed) {
		return 0, NewError(types.ErrInvalidNumber, raw, "%q is not a number", s)
	}
	x, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		if gomath.IsInf(x, 0) {
			return 0, NewError(types.ErrInvalidNumber, raw, "%q is outside the double-precision range", s)
		}
		return 0, NewError(types.ErrInvalidNumber, raw, "%q is not a number", s)
	}
	return finite(x, raw)
}

// CoerceSequence converts a raw argument into a slice of finite float64.
// Empty sequences are accepted; minimum lengths are enforced by Checks.
func CoerceSequence(raw interface{}) ([]float64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, NewError(types.ErrInvalidSequence, raw, "value is null")
	case string:
		return coerceSequenceLiteral(v)
	case []float64:
		out := make([]float64, len(v))
		for i, x := range v {
			if _, err := finite(x, x); err != nil {
				return nil, elementError(i, x, err)
			}
			out[i] = x
		}
		return out, nil
	case []byte:
		return nil, NewError(types.ErrInvalidSequence, raw, "byte strings are not sequences")
	case map[string]interface{}:
		return nil, NewError(types.ErrInvalidSequence, raw, "objects are not sequences")
	}
	return coerceElements(raw, true)
}

// coerceSequenceLiteral accepts a string only when it spells a JSON array
func coerceSequenceLiteral(s string) ([]float64, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, NewError(types.ErrInvalidSequence, s, "strings are not sequences")
	}

	var decoded []interface{}
	if err := sonic.UnmarshalString(trimmed, &decoded); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(trimmed)
		if repairErr != nil {
			return nil, NewError(types.ErrInvalidSequence, s, "malformed sequence literal")
		}
		decoded = nil
		if err := sonic.UnmarshalString(repaired, &decoded); err != nil {
			return nil, NewError(types.ErrInvalidSequence, s, "malformed sequence literal")
		}
	}
	return coerceElements(decoded, true)
}

// coerceElements coerces every element of a slice or array. A sequence
// holding exactly one nested sequence is unwrapped once when unwrap is set.
func coerceElements(raw interface{}, unwrap bool) ([]float64, error) {
	if !isList(raw) {
		return nil, NewError(types.ErrInvalidSequence, raw, "%s is not a sequence", describe(raw))
	}

	rv := reflect.ValueOf(raw)
	n := rv.Len()
	if unwrap && n == 1 {
		if inner := rv.Index(0).Interface(); isList(inner) {
			return coerceElements(inner, false)
		}
	}

	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		elem := rv.Index(i).Interface()
		if isList(elem) {
			return nil, NewError(types.ErrInvalidSequence, elem, "element %d is a nested sequence", i)
		}
		x, err := CoerceNumber(elem)
		if err != nil {
			return nil, elementError(i, elem, err)
		}
		out = append(out, x)
	}
	return out, nil
}

func elementError(i int, elem interface{}, err error) *Error {
	return NewError(types.ErrInvalidSequence, elem, "element %d (%s): %s", i, describe(elem), asError(err).Message)
}

func isList(v interface{}) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// CoerceText converts a raw argument into a trimmed, lower-case string
func CoerceText(raw interface{}) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", NewError(types.ErrDomain, raw, "%s is not text", describe(raw))
	}
	return strings.ToLower(strings.TrimSpace(s)), nil
}

// describe renders a raw value for error messages
func describe(v interface{}) string {
	var s string
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		s = strconv.Quote(x)
	default:
		s = fmt.Sprintf("%v", x)
	}
	if len(s) > 64 {
		s = s[:61] + "..."
	}
	return s
}
