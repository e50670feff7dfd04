package types

// Category represents service categories
type Category string

const (
	CategoryMath Category = "math"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents an externally callable operation
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Group       string      `json:"group,omitempty"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Items       string   `json:"items,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// Result represents a tool execution result.
// Exactly one of Value and Error is set.
type Result struct {
	Success bool         `json:"success"`
	Value   interface{}  `json:"value,omitempty"`
	Error   *ErrorReport `json:"error,omitempty"`
}

// ErrorReport is the structured failure returned instead of a raw fault
type ErrorReport struct {
	Kind      ErrorKind   `json:"kind"`
	Operation string      `json:"operation"`
	Message   string      `json:"message"`
	Input     interface{} `json:"input,omitempty"`
}

// ErrorKind classifies a failed call
type ErrorKind string

const (
	ErrInvalidNumber            ErrorKind = "InvalidNumber"
	ErrInvalidSequence          ErrorKind = "InvalidSequence"
	ErrDomain                   ErrorKind = "DomainError"
	ErrDivisionByZero           ErrorKind = "DivisionByZero"
	ErrInsufficientData         ErrorKind = "InsufficientData"
	ErrDimensionMismatch        ErrorKind = "DimensionMismatch"
	ErrOverflowRisk             ErrorKind = "OverflowRisk"
	ErrUnknownOperation         ErrorKind = "UnknownOperation"
	ErrInternalComputationError ErrorKind = "InternalComputationError"
)

// ErrorKinds lists every kind in the taxonomy
var ErrorKinds = []ErrorKind{
	ErrInvalidNumber,
	ErrInvalidSequence,
	ErrDomain,
	ErrDivisionByZero,
	ErrInsufficientData,
	ErrDimensionMismatch,
	ErrOverflowRisk,
	ErrUnknownOperation,
	ErrInternalComputationError,
}
