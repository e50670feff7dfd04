package operations

import (
	gomath "math"
	"math/big"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/GriffinCanCode/mathd/internal/providers/math/common"
)

// DefaultFactorialLimit is the largest n whose factorial fits in a float64
const DefaultFactorialLimit = 170

// ArithmeticOps handles basic arithmetic operations
type ArithmeticOps struct {
	// FactorialLimit rejects factorial(n) for n above it with OverflowRisk
	FactorialLimit int
}

// Specs returns arithmetic operation definitions
func (a *ArithmeticOps) Specs() []common.Spec {
	numbers := common.Sequence("numbers", "Numbers, applied left to right").WithPack("a", "b")
	pair := []common.Param{numbers}

	return []common.Spec{
		{
			Name:        "add",
			Title:       "Add",
			Description: "Add two or more numbers (pass numbers, or a and b)",
			Group:       "arithmetic",
			Params:      pair,
			Checks:      []common.Check{common.MinLength("numbers", 1)},
			Compute:     a.Add,
		},
		{
			Name:        "subtract",
			Title:       "Subtract",
			Description: "Subtract numbers sequentially: a - b - c ...",
			Group:       "arithmetic",
			Params:      pair,
			Checks:      []common.Check{common.MinLength("numbers", 1)},
			Compute:     a.Subtract,
		},
		{
			Name:        "multiply",
			Title:       "Multiply",
			Description: "Multiply two or more numbers",
			Group:       "arithmetic",
			Params:      pair,
			Checks:      []common.Check{common.MinLength("numbers", 1)},
			Compute:     a.Multiply,
		},
		{
			Name:        "divide",
			Title:       "Divide",
			Description: "Divide numbers sequentially: a / b / c ...",
			Group:       "arithmetic",
			Params:      pair,
			Checks: []common.Check{
				common.MinLength("numbers", 1),
				common.NonZeroTail("numbers"),
			},
			Compute: a.Divide,
		},
		{
			Name:        "modulo",
			Title:       "Modulo",
			Description: "Remainder of a / b, taking the sign of b",
			Group:       "arithmetic",
			Params: []common.Param{
				common.Number("a", "Dividend"),
				common.Number("b", "Divisor"),
			},
			Checks:  []common.Check{common.NonZero("b")},
			Compute: a.Modulo,
		},
		{
			Name:        "power",
			Title:       "Power",
			Description: "Raise base to the power of exponent",
			Group:       "arithmetic",
			Params: []common.Param{
				common.Number("base", "Base"),
				common.Number("exponent", "Exponent"),
			},
			Checks:  []common.Check{common.RealPower("base", "exponent")},
			Compute: a.Power,
		},
		{
			Name:        "sqrt",
			Title:       "Square Root",
			Description: "Square root of a non-negative number",
			Group:       "arithmetic",
			Params:      []common.Param{common.Number("x", "Radicand")},
			Checks:      []common.Check{common.NonNegative("x")},
			Compute:     a.Sqrt,
		},
		{
			Name:        "log",
			Title:       "Logarithm",
			Description: "Logarithm of x, natural unless base is given",
			Group:       "arithmetic",
			Params: []common.Param{
				common.Number("x", "Positive number"),
				common.OptionalNumber("base", "Logarithm base (default e)"),
			},
			Checks: []common.Check{
				common.Positive("x"),
				common.LogBase("base"),
			},
			Compute: a.Log,
		},
		{
			Name:        "log10",
			Title:       "Base-10 Logarithm",
			Description: "Calculate log10(x)",
			Group:       "arithmetic",
			Params:      []common.Param{common.Number("x", "Positive number")},
			Checks:      []common.Check{common.Positive("x")},
			Compute:     a.Log10,
		},
		{
			Name:        "factorial",
			Title:       "Factorial",
			Description: "Exact factorial of a non-negative integer (n!)",
			Group:       "arithmetic",
			Params:      []common.Param{common.Number("n", "Non-negative integer").WithAliases("x")},
			Checks: []common.Check{
				common.NonNegative("n"),
				common.Whole("n"),
				common.Ceiling("n", float64(a.factorialLimit())),
			},
			Compute: a.Factorial,
			Returns: "integer",
		},
		{
			Name:        "gcd",
			Title:       "Greatest Common Divisor",
			Description: "Greatest common divisor of two integers",
			Group:       "arithmetic",
			Params: []common.Param{
				common.Number("a", "First integer"),
				common.Number("b", "Second integer"),
			},
			Checks: []common.Check{
				common.Whole("a", "b"),
				common.SafeInteger("a", "b"),
				common.AnyNonZero("a", "b"),
			},
			Compute: a.GCD,
			Returns: "integer",
		},
		{
			Name:        "lcm",
			Title:       "Least Common Multiple",
			Description: "Least common multiple of two integers (0 if either is 0)",
			Group:       "arithmetic",
			Params: []common.Param{
				common.Number("a", "First integer"),
				common.Number("b", "Second integer"),
			},
			Checks: []common.Check{
				common.Whole("a", "b"),
				common.SafeInteger("a", "b"),
			},
			Compute: a.LCM,
			Returns: "integer",
		},
		{
			Name:        "abs",
			Title:       "Absolute Value",
			Description: "Absolute value of a number",
			Group:       "rounding",
			Params:      []common.Param{common.Number("x", "Number")},
			Compute:     a.Abs,
		},
		{
			Name:        "floor",
			Title:       "Floor",
			Description: "Round down to the nearest integer",
			Group:       "rounding",
			Params:      []common.Param{common.Number("x", "Number")},
			Compute:     a.Floor,
		},
		{
			Name:        "ceil",
			Title:       "Ceiling",
			Description: "Round up to the nearest integer",
			Group:       "rounding",
			Params:      []common.Param{common.Number("x", "Number")},
			Compute:     a.Ceil,
		},
		{
			Name:        "round",
			Title:       "Round",
			Description: "Round to the given number of decimal digits, ties to even",
			Group:       "rounding",
			Params: []common.Param{
				common.Number("x", "Number"),
				common.OptionalNumber("digits", "Decimal digits, -15 to 15 (default 0)"),
			},
			Checks: []common.Check{
				common.Whole("digits"),
				common.Range("digits", -15, 15),
			},
			Compute: a.Round,
		},
	}
}

func (a *ArithmeticOps) factorialLimit() int {
	if a.FactorialLimit <= 0 {
		return DefaultFactorialLimit
	}
	return a.FactorialLimit
}

// Add adds numbers
func (a *ArithmeticOps) Add(args common.Args) (interface{}, error) {
	return floats.Sum(args.Sequence("numbers")), nil
}

// Subtract subtracts every following number from the first
func (a *ArithmeticOps) Subtract(args common.Args) (interface{}, error) {
	nums := args.Sequence("numbers")
	result := nums[0]
	for _, n := range nums[1:] {
		result -= n
	}
	return result, nil
}

// Multiply multiplies numbers
func (a *ArithmeticOps) Multiply(args common.Args) (interface{}, error) {
	return floats.Prod(args.Sequence("numbers")), nil
}

// Divide divides the first number by every following number
func (a *ArithmeticOps) Divide(args common.Args) (interface{}, error) {
	nums := args.Sequence("numbers")
	result := nums[0]
	for _, n := range nums[1:] {
		result /= n
	}
	return result, nil
}

// Modulo calculates the floored remainder
func (a *ArithmeticOps) Modulo(args common.Args) (interface{}, error) {
	x, y := args.Number("a"), args.Number("b")
	r := gomath.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r, nil
}

// Power raises base to exponent
func (a *ArithmeticOps) Power(args common.Args) (interface{}, error) {
	return gomath.Pow(args.Number("base"), args.Number("exponent")), nil
}

// Sqrt calculates square root
func (a *ArithmeticOps) Sqrt(args common.Args) (interface{}, error) {
	return gomath.Sqrt(args.Number("x")), nil
}

// Log calculates the natural or custom-base logarithm
func (a *ArithmeticOps) Log(args common.Args) (interface{}, error) {
	x := args.Number("x")
	if !args.Has("base") {
		return gomath.Log(x), nil
	}
	return gomath.Log(x) / gomath.Log(args.Number("base")), nil
}

// Log10 calculates base-10 logarithm
func (a *ArithmeticOps) Log10(args common.Args) (interface{}, error) {
	return gomath.Log10(args.Number("x")), nil
}

// Factorial calculates n! exactly
func (a *ArithmeticOps) Factorial(args common.Args) (interface{}, error) {
	n := int64(args.Number("n"))
	if n < 2 {
		return big.NewInt(1), nil
	}
	return new(big.Int).MulRange(1, n), nil
}

// GCD calculates greatest common divisor
func (a *ArithmeticOps) GCD(args common.Args) (interface{}, error) {
	x := abs64(int64(args.Number("a")))
	y := abs64(int64(args.Number("b")))
	for y != 0 {
		x, y = y, x%y
	}
	return x, nil
}

// LCM calculates least common multiple
func (a *ArithmeticOps) LCM(args common.Args) (interface{}, error) {
	x := big.NewInt(abs64(int64(args.Number("a"))))
	y := big.NewInt(abs64(int64(args.Number("b"))))
	if x.Sign() == 0 || y.Sign() == 0 {
		return big.NewInt(0), nil
	}
	gcd := new(big.Int).GCD(nil, nil, x, y)
	return new(big.Int).Mul(new(big.Int).Quo(x, gcd), y), nil
}

// Abs calculates absolute value
func (a *ArithmeticOps) Abs(args common.Args) (interface{}, error) {
	return gomath.Abs(args.Number("x")), nil
}

// Floor rounds down
func (a *ArithmeticOps) Floor(args common.Args) (interface{}, error) {
	return gomath.Floor(args.Number("x")), nil
}

// Ceil rounds up
func (a *ArithmeticOps) Ceil(args common.Args) (interface{}, error) {
	return gomath.Ceil(args.Number("x")), nil
}

// Round rounds to digits decimal places using round-half-to-even on the
// exact binary value, so round(2.675, 2) is 2.67
func (a *ArithmeticOps) Round(args common.Args) (interface{}, error) {
	x := args.Number("x")
	digits := int(args.NumberOr("digits", 0))

	if digits < 0 {
		scale := gomath.Pow(10, float64(-digits))
		return gomath.RoundToEven(x/scale) * scale, nil
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', digits, 64), 64)
	if err != nil {
		return nil, err
	}
	return rounded, nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
