package common

import (
	gomath "math"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// maxEchoBytes bounds the encoded size of an input echoed in an ErrorReport
const maxEchoBytes = 256

// Success creates a successful result
func Success(value interface{}) *types.Result {
	return &types.Result{Success: true, Value: value}
}

// Failure converts err into a failed result for operation
func Failure(operation string, err error) *types.Result {
	ce := asError(err)
	return &types.Result{
		Success: false,
		Error: &types.ErrorReport{
			Kind:      ce.Kind,
			Operation: operation,
			Message:   ce.Message,
			Input:     echo(ce.Input),
		},
	}
}

// echo returns input if it is JSON-representable and small, else nil
func echo(input interface{}) interface{} {
	if input == nil {
		return nil
	}
	if f, ok := input.(float64); ok && (gomath.IsNaN(f) || gomath.IsInf(f, 0)) {
		return nil
	}
	encoded, err := sonic.Marshal(input)
	if err != nil || len(encoded) > maxEchoBytes {
		return nil
	}
	return input
}

// CheckFinite rejects computed values that are not finite numbers.
// +Inf and -Inf map to OverflowRisk, NaN to DomainError.
func CheckFinite(value interface{}) error {
	switch v := value.(type) {
	case float64:
		return checkFloat(v)
	case []float64:
		for _, x := range v {
			if err := checkFloat(x); err != nil {
				return err
			}
		}
	case map[string]float64:
		for _, x := range v {
			if err := checkFloat(x); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkFloat(x float64) error {
	if gomath.IsNaN(x) {
		return NewError(types.ErrDomain, nil, "result is undefined (NaN)")
	}
	if gomath.IsInf(x, 0) {
		return NewError(types.ErrOverflowRisk, nil, "result exceeds the double-precision range")
	}
	return nil
}
