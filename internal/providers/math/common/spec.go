package common

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kaptinlin/jsonrepair"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// ComputeFunc evaluates an operation on validated arguments
type ComputeFunc func(args Args) (interface{}, error)

// Param declares one named input of an operation
type Param struct {
	Name        string
	Shape       Shape
	Description string
	Required    bool
	Enum        []string
	// Pack builds a sequence parameter from scalar keys when the sequence
	// itself is absent, e.g. numbers from a and b
	Pack []string
	// Aliases are alternative argument names accepted for this parameter
	Aliases []string
}

// Spec is the immutable description of one catalog operation
type Spec struct {
	Name        string
	Title       string
	Description string
	Group       string
	Params      []Param
	Checks      []Check
	Compute     ComputeFunc
	Returns     string
}

// Number declares a required numeric parameter
func Number(name, description string) Param {
	return Param{Name: name, Shape: ShapeNumber, Description: description, Required: true}
}

// OptionalNumber declares an optional numeric parameter
func OptionalNumber(name, description string) Param {
	return Param{Name: name, Shape: ShapeNumber, Description: description}
}

// Sequence declares a required sequence parameter
func Sequence(name, description string) Param {
	return Param{Name: name, Shape: ShapeSequence, Description: description, Required: true}
}

// Text declares a required enumerated text parameter
func Text(name, description string, enum ...string) Param {
	return Param{Name: name, Shape: ShapeText, Description: description, Required: true, Enum: enum}
}

// WithPack returns a copy of p that can be assembled from scalar keys
func (p Param) WithPack(keys ...string) Param {
	p.Pack = keys
	return p
}

// WithAliases returns a copy of p that also answers to the given names
func (p Param) WithAliases(names ...string) Param {
	p.Aliases = names
	return p
}

// Tool converts the spec into its advertised tool definition
func (s Spec) Tool() types.Tool {
	params := make([]types.Parameter, 0, len(s.Params))
	for _, p := range s.Params {
		tp := types.Parameter{
			Name:        p.Name,
			Type:        p.Shape.String(),
			Description: p.Description,
			Required:    p.Required,
			Enum:        p.Enum,
		}
		if p.Shape == ShapeSequence {
			tp.Items = "number"
		}
		params = append(params, tp)
	}

	returns := s.Returns
	if returns == "" {
		returns = "number"
	}

	return types.Tool{
		ID:          s.Name,
		Name:        s.Title,
		Description: s.Description,
		Group:       s.Group,
		Parameters:  params,
		Returns:     returns,
	}
}

// Coerce binds raw arguments to the declared parameters and converts each
// one to its declared shape. The first failing parameter aborts.
func Coerce(spec Spec, raw interface{}) (Args, error) {
	bound, err := bind(spec, raw)
	if err != nil {
		return Args{}, err
	}

	values := make(map[string]Value, len(spec.Params))
	for _, p := range spec.Params {
		rawValue, ok := lookup(bound, p)
		if !ok {
			if p.Required {
				return Args{}, missing(p)
			}
			continue
		}

		v, err := coerceParam(p, rawValue)
		if err != nil {
			return Args{}, err
		}
		values[p.Name] = v
	}
	return NewArgs(values), nil
}

func coerceParam(p Param, raw interface{}) (Value, error) {
	switch p.Shape {
	case ShapeSequence:
		xs, err := CoerceSequence(raw)
		if err != nil {
			return Value{}, prefix(p.Name, err)
		}
		return SequenceValue(xs), nil
	case ShapeText:
		s, err := CoerceText(raw)
		if err != nil {
			return Value{}, prefix(p.Name, err)
		}
		return TextValue(s), nil
	default:
		x, err := CoerceNumber(raw)
		if err != nil {
			return Value{}, prefix(p.Name, err)
		}
		return NumberValue(x), nil
	}
}

// lookup finds the raw value of p under its name, an alias, or packed from
// scalar keys. Null values count as absent.
func lookup(bound map[string]interface{}, p Param) (interface{}, bool) {
	names := append([]string{p.Name}, p.Aliases...)
	for _, name := range names {
		if v, ok := bound[name]; ok && v != nil {
			return v, true
		}
	}

	if len(p.Pack) == 0 {
		return nil, false
	}
	packed := make([]interface{}, 0, len(p.Pack))
	for _, key := range p.Pack {
		v, ok := bound[key]
		if !ok || v == nil {
			return nil, false
		}
		packed = append(packed, v)
	}
	return packed, true
}

// bind turns the raw argument payload into a name-keyed map
func bind(spec Spec, raw interface{}) (map[string]interface{}, error) {
	switch v := raw.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return v, nil
	case string:
		if obj, ok := decodeObject(v); ok {
			return obj, nil
		}
	}

	if isList(raw) {
		if p, ok := soleParam(spec, ShapeSequence); ok {
			return map[string]interface{}{p.Name: raw}, nil
		}
		if positional, ok := bindPositional(spec, raw); ok {
			return positional, nil
		}
		return nil, NewError(types.ErrInvalidSequence, raw, "%s does not take a bare sequence", spec.Name)
	}

	if len(spec.Params) == 1 {
		return map[string]interface{}{spec.Params[0].Name: raw}, nil
	}
	if len(spec.Params) == 0 {
		return map[string]interface{}{}, nil
	}
	return nil, NewError(firstKind(spec), raw, "%s expects named arguments", spec.Name)
}

// decodeObject accepts a stringified JSON object, repairing it if needed
func decodeObject(s string) (map[string]interface{}, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var obj map[string]interface{}
	if err := sonic.UnmarshalString(trimmed, &obj); err == nil {
		return obj, true
	}
	repaired, err := jsonrepair.JSONRepair(trimmed)
	if err != nil {
		return nil, false
	}
	obj = nil
	if err := sonic.UnmarshalString(repaired, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// bindPositional maps a bare array onto an all-numeric parameter list
func bindPositional(spec Spec, raw interface{}) (map[string]interface{}, bool) {
	if len(spec.Params) == 0 {
		return nil, false
	}
	for _, p := range spec.Params {
		if p.Shape != ShapeNumber {
			return nil, false
		}
	}
	items, ok := raw.([]interface{})
	if !ok || len(items) > len(spec.Params) {
		return nil, false
	}
	out := make(map[string]interface{}, len(items))
	for i, item := range items {
		out[spec.Params[i].Name] = item
	}
	return out, true
}

func soleParam(spec Spec, shape Shape) (Param, bool) {
	if len(spec.Params) == 0 {
		return Param{}, false
	}
	var found *Param
	for i := range spec.Params {
		p := spec.Params[i]
		if p.Shape == shape {
			if found != nil {
				return Param{}, false
			}
			found = &spec.Params[i]
		} else if p.Required {
			return Param{}, false
		}
	}
	if found == nil {
		return Param{}, false
	}
	return *found, true
}

func firstKind(spec Spec) types.ErrorKind {
	if len(spec.Params) > 0 && spec.Params[0].Shape == ShapeSequence {
		return types.ErrInvalidSequence
	}
	return types.ErrInvalidNumber
}

func missing(p Param) *Error {
	switch p.Shape {
	case ShapeSequence:
		return NewError(types.ErrInvalidSequence, nil, "%s is required", p.Name)
	case ShapeText:
		return NewError(types.ErrDomain, nil, "%s is required (one of %s)", p.Name, strings.Join(p.Enum, ", "))
	default:
		return NewError(types.ErrInvalidNumber, nil, "%s is required", p.Name)
	}
}

// prefix names the parameter in a coercion failure
func prefix(name string, err error) error {
	ce := asError(err)
	return &Error{Kind: ce.Kind, Message: name + ": " + ce.Message, Input: ce.Input}
}
