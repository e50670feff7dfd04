package common

// Shape is the declared input shape of a parameter
type Shape int

const (
	ShapeNumber Shape = iota
	ShapeSequence
	ShapeText
)

// String returns the JSON schema type of the shape
func (s Shape) String() string {
	switch s {
	case ShapeNumber:
		return "number"
	case ShapeSequence:
		return "array"
	case ShapeText:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a coerced argument. Shape selects which field is meaningful.
type Value struct {
	Shape Shape
	Num   float64
	Seq   []float64
	Text  string
}

// NumberValue wraps a coerced number
func NumberValue(x float64) Value {
	return Value{Shape: ShapeNumber, Num: x}
}

// SequenceValue wraps a coerced sequence
func SequenceValue(xs []float64) Value {
	return Value{Shape: ShapeSequence, Seq: xs}
}

// TextValue wraps a coerced text argument
func TextValue(s string) Value {
	return Value{Shape: ShapeText, Text: s}
}

// Args holds the coerced arguments of a single call
type Args struct {
	values map[string]Value
}

// NewArgs builds Args from already coerced values
func NewArgs(values map[string]Value) Args {
	if values == nil {
		values = map[string]Value{}
	}
	return Args{values: values}
}

// Has reports whether name was supplied
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Get returns the value bound to name
func (a Args) Get(name string) (Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Number returns the numeric argument name, or 0 if absent
func (a Args) Number(name string) float64 {
	return a.values[name].Num
}

// NumberOr returns the numeric argument name, or def if absent
func (a Args) NumberOr(name string, def float64) float64 {
	if v, ok := a.values[name]; ok {
		return v.Num
	}
	return def
}

// Sequence returns the sequence argument name
func (a Args) Sequence(name string) []float64 {
	return a.values[name].Seq
}

// Text returns the text argument name
func (a Args) Text(name string) string {
	return a.values[name].Text
}
