// Package testutil provides testing utilities and helpers shared across packages.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

// MockProvider is a mock implementation of service.Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Definition mocks the Definition method.
func (m *MockProvider) Definition() types.Service {
	args := m.Called()
	return args.Get(0).(types.Service)
}

// Execute mocks the Execute method.
func (m *MockProvider) Execute(ctx context.Context, toolID string, raw interface{}) *types.Result {
	args := m.Called(ctx, toolID, raw)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*types.Result)
}

// MockObserver is a mock implementation of service.Observer for testing.
type MockObserver struct {
	mock.Mock
}

// RecordToolCall mocks the RecordToolCall method.
func (m *MockObserver) RecordToolCall(tool, status string, duration time.Duration) {
	m.Called(tool, status, duration)
}

// RecordToolError mocks the RecordToolError method.
func (m *MockObserver) RecordToolError(tool string, kind types.ErrorKind) {
	m.Called(tool, kind)
}

// NewMockProvider creates a mock provider advertising the given tools.
func NewMockProvider(t *testing.T, serviceID string, tools ...string) *MockProvider {
	t.Helper()
	m := new(MockProvider)

	m.On("Definition").Return(CreateTestService(t, serviceID, tools...)).Maybe()

	return m
}

// NewMockObserver creates an observer that accepts any call.
func NewMockObserver(t *testing.T) *MockObserver {
	t.Helper()
	m := new(MockObserver)

	m.On("RecordToolCall", mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("RecordToolError", mock.Anything, mock.Anything).Maybe()

	return m
}

// CreateTestService creates a test service definition with one numeric tool
// per name.
func CreateTestService(t *testing.T, id string, tools ...string) types.Service {
	t.Helper()

	svc := types.Service{
		ID:           id,
		Name:         "Test Service",
		Description:  "A test service for unit testing",
		Category:     types.CategoryMath,
		Capabilities: []string{"test"},
	}
	for _, name := range tools {
		svc.Tools = append(svc.Tools, types.Tool{
			ID:          name,
			Name:        name,
			Description: "Test tool " + name,
			Group:       "test",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Input", Required: true},
			},
			Returns: "number",
		})
	}
	return svc
}

// AssertSuccess is a helper to assert a successful result.
func AssertSuccess(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if !result.Success {
		t.Fatalf("Expected success, got error: %+v", result.Error)
	}
	if result.Error != nil {
		t.Fatalf("Successful result carries an error: %+v", result.Error)
	}
}

// AssertErrorKind is a helper to assert a failed result of the given kind.
func AssertErrorKind(t *testing.T, result *types.Result, kind types.ErrorKind) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if result.Success {
		t.Fatalf("Expected %s, got success with %v", kind, result.Value)
	}
	if result.Error == nil {
		t.Fatal("Expected error report, got nil")
	}
	if result.Value != nil {
		t.Fatalf("Failed result carries a value: %v", result.Value)
	}
	if result.Error.Kind != kind {
		t.Fatalf("Expected %s, got %s: %s", kind, result.Error.Kind, result.Error.Message)
	}
}

// AssertValue is a helper to assert a successful float result within delta.
func AssertValue(t *testing.T, result *types.Result, expected, delta float64) {
	t.Helper()
	AssertSuccess(t, result)

	actual, ok := result.Value.(float64)
	if !ok {
		t.Fatalf("Expected float64 value, got %T (%v)", result.Value, result.Value)
	}
	if diff := actual - expected; diff > delta || diff < -delta {
		t.Fatalf("Expected %v (±%v), got %v", expected, delta, actual)
	}
}
