package common

import (
	gomath "math"
	"strings"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// MaxSafeInteger is the largest n such that every integer in [-n, n] is
// exactly representable as a float64. 2^53 itself is excluded because
// 2^53+1 rounds onto it.
const MaxSafeInteger = 1<<53 - 1

// Check is a named precondition evaluated after coercion
type Check struct {
	Name string
	Fn   func(args Args) error
}

// Validate runs checks in order and returns the first failure
func Validate(checks []Check, args Args) error {
	for _, c := range checks {
		if err := c.Fn(args); err != nil {
			return err
		}
	}
	return nil
}

// NonZero requires a numeric argument other than zero
func NonZero(name string) Check {
	return Check{Name: "non_zero:" + name, Fn: func(args Args) error {
		if args.Number(name) == 0 {
			return NewError(types.ErrDivisionByZero, 0, "%s must not be zero", name)
		}
		return nil
	}}
}

// NonZeroTail requires every element after the first to be non-zero
func NonZeroTail(name string) Check {
	return Check{Name: "non_zero_tail:" + name, Fn: func(args Args) error {
		xs := args.Sequence(name)
		for i := 1; i < len(xs); i++ {
			if xs[i] == 0 {
				return NewError(types.ErrDivisionByZero, xs, "%s[%d] is a zero divisor", name, i)
			}
		}
		return nil
	}}
}

// NonNegative requires name >= 0
func NonNegative(name string) Check {
	return Check{Name: "non_negative:" + name, Fn: func(args Args) error {
		if x := args.Number(name); x < 0 {
			return NewError(types.ErrDomain, x, "%s must be non-negative, got %v", name, x)
		}
		return nil
	}}
}

// Positive requires name > 0
func Positive(name string) Check {
	return Check{Name: "positive:" + name, Fn: func(args Args) error {
		if x := args.Number(name); x <= 0 {
			return NewError(types.ErrDomain, x, "%s must be positive, got %v", name, x)
		}
		return nil
	}}
}

// LogBase requires an optional base to be positive and not 1
func LogBase(name string) Check {
	return Check{Name: "log_base:" + name, Fn: func(args Args) error {
		if !args.Has(name) {
			return nil
		}
		b := args.Number(name)
		if b <= 0 || b == 1 {
			return NewError(types.ErrDomain, b, "%s must be positive and not 1, got %v", name, b)
		}
		return nil
	}}
}

// Whole requires each named numeric argument to be an integer
func Whole(names ...string) Check {
	return Check{Name: "whole:" + strings.Join(names, ","), Fn: func(args Args) error {
		for _, name := range names {
			if !args.Has(name) {
				continue
			}
			if x := args.Number(name); x != gomath.Trunc(x) {
				return NewError(types.ErrDomain, x, "%s must be a whole number, got %v", name, x)
			}
		}
		return nil
	}}
}

// SafeInteger requires |name| < 2^53 for each named argument
func SafeInteger(names ...string) Check {
	return Check{Name: "safe_integer:" + strings.Join(names, ","), Fn: func(args Args) error {
		for _, name := range names {
			if x := args.Number(name); gomath.Abs(x) > MaxSafeInteger {
				return NewError(types.ErrOverflowRisk, x, "%s is outside the exactly representable integer range (|n| < 2^53)", name)
			}
		}
		return nil
	}}
}

// Ceiling requires name <= limit
func Ceiling(name string, limit float64) Check {
	return Check{Name: "ceiling:" + name, Fn: func(args Args) error {
		if x := args.Number(name); x > limit {
			return NewError(types.ErrOverflowRisk, x, "%s must be at most %v, got %v", name, limit, x)
		}
		return nil
	}}
}

// MinLength requires a sequence of at least n elements
func MinLength(name string, n int) Check {
	return Check{Name: "min_length:" + name, Fn: func(args Args) error {
		xs := args.Sequence(name)
		if len(xs) < n {
			return NewError(types.ErrInsufficientData, xs, "%s needs at least %d value(s), got %d", name, n, len(xs))
		}
		return nil
	}}
}

// ExactLength requires a sequence of exactly n elements
func ExactLength(name string, n int) Check {
	return Check{Name: "exact_length:" + name, Fn: func(args Args) error {
		xs := args.Sequence(name)
		if len(xs) != n {
			return NewError(types.ErrDimensionMismatch, xs, "%s must have exactly %d coordinates, got %d", name, n, len(xs))
		}
		return nil
	}}
}

// SameLength requires two sequences of equal length
func SameLength(a, b string) Check {
	return Check{Name: "same_length:" + a + "," + b, Fn: func(args Args) error {
		la, lb := len(args.Sequence(a)), len(args.Sequence(b))
		if la != lb {
			return NewError(types.ErrDimensionMismatch, nil, "%s has %d values but %s has %d", a, la, b, lb)
		}
		return nil
	}}
}

// AnyNonZero requires at least one of the named arguments to be non-zero
func AnyNonZero(names ...string) Check {
	return Check{Name: "any_non_zero:" + strings.Join(names, ","), Fn: func(args Args) error {
		for _, name := range names {
			if args.Number(name) != 0 {
				return nil
			}
		}
		return NewError(types.ErrDomain, 0, "%s must not all be zero", strings.Join(names, " and "))
	}}
}

// OneOf requires a text argument to be one of the allowed values
func OneOf(name string, allowed ...string) Check {
	return Check{Name: "one_of:" + name, Fn: func(args Args) error {
		s := args.Text(name)
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return NewError(types.ErrDomain, s, "%s must be one of %s, got %q", name, strings.Join(allowed, ", "), s)
	}}
}

// Ordered requires lo <= hi
func Ordered(lo, hi string) Check {
	return Check{Name: "ordered:" + lo + "," + hi, Fn: func(args Args) error {
		l, h := args.Number(lo), args.Number(hi)
		if l > h {
			return NewError(types.ErrDomain, nil, "%s (%v) must not exceed %s (%v)", lo, l, hi, h)
		}
		return nil
	}}
}

// RealPower rejects powers with no finite real result: zero to a negative
// exponent and a negative base to a fractional exponent
func RealPower(base, exponent string) Check {
	return Check{Name: "real_power:" + base + "," + exponent, Fn: func(args Args) error {
		b, e := args.Number(base), args.Number(exponent)
		if b == 0 && e < 0 {
			return NewError(types.ErrDivisionByZero, nil, "zero cannot be raised to a negative power")
		}
		if b < 0 && e != gomath.Trunc(e) {
			return NewError(types.ErrDomain, nil, "negative base %v with fractional exponent %v has no real result", b, e)
		}
		return nil
	}}
}

// Range requires lo <= name <= hi
func Range(name string, lo, hi float64) Check {
	return Check{Name: "range:" + name, Fn: func(args Args) error {
		if !args.Has(name) {
			return nil
		}
		if x := args.Number(name); x < lo || x > hi {
			return NewError(types.ErrDomain, x, "%s must be between %v and %v, got %v", name, lo, hi, x)
		}
		return nil
	}}
}
