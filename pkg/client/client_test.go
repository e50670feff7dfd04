package client

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/GriffinCanCode/mathd/internal/api/http"
	"github.com/GriffinCanCode/mathd/internal/domain/service"
	"github.com/GriffinCanCode/mathd/internal/infrastructure/resilience"
	mathProvider "github.com/GriffinCanCode/mathd/internal/providers/math"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

func newMathServer(t *testing.T, opts ...mathProvider.Option) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := mathProvider.NewProvider(opts...)
	require.NoError(t, err)
	registry, err := service.NewRegistry(nil, nil, provider)
	require.NoError(t, err)

	router := gin.New()
	apihttp.NewHandlers(registry, nil).Register(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func TestListTools(t *testing.T) {
	c := New(newMathServer(t).URL)

	tools, err := c.ListTools(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, tools, 35)

	trig, err := c.ListTools(context.Background(), "trigonometry")
	require.NoError(t, err)
	assert.Len(t, trig, 5)
}

func TestToolAndDiscover(t *testing.T) {
	c := New(newMathServer(t).URL)

	tool, err := c.Tool(context.Background(), "median")
	require.NoError(t, err)
	assert.Equal(t, "statistics", tool.Group)

	_, err = c.Tool(context.Background(), "integrate")
	assert.ErrorIs(t, err, ErrBadRequest)

	found, err := c.Discover(context.Background(), "square root", 3)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, "sqrt", found[0].ID)
}

func TestCall(t *testing.T) {
	c := New(newMathServer(t).URL)

	result, err := c.Call(context.Background(), "lcm", map[string]interface{}{"a": 4, "b": 6})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, json.Number("12"), result.Value)

	result, err = c.Call(context.Background(), "mean", []interface{}{2, 4, 9})
	require.NoError(t, err)
	assert.Equal(t, json.Number("5"), result.Value)
}

func TestCallKeepsWideIntegers(t *testing.T) {
	c := New(newMathServer(t, mathProvider.WithFactorialLimit(500)).URL)

	result, err := c.Call(context.Background(), "factorial", map[string]interface{}{"n": 25})
	require.NoError(t, err)
	assert.Equal(t, json.Number("15511210043330985984000000"), result.Value)

	result, err = c.Call(context.Background(), "factorial", map[string]interface{}{"n": 200})
	require.NoError(t, err)
	require.True(t, result.Success)
	digits, ok := result.Value.(json.Number)
	require.True(t, ok, "got %T", result.Value)
	assert.Len(t, digits.String(), 375)
	assert.Equal(t, new(big.Int).MulRange(1, 200).String(), digits.String())
	assert.Zero(t, c.Breaker().Counts().Failures)
}

func TestUndecodableAnswerIsNotARemoteFailure(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": tru`))
	}))
	defer ts.Close()

	c := New(ts.URL, WithBreaker(resilience.Settings{
		ShouldTrip: func(counts resilience.Counts) bool { return counts.ConsecutiveFailures >= 1 },
	}))

	for i := 0; i < 2; i++ {
		_, err := c.Call(context.Background(), "add", []interface{}{1, 2})
		assert.ErrorIs(t, err, ErrDecode)
	}
	assert.Equal(t, int32(2), hits.Load())
	assert.Zero(t, c.Breaker().Counts().Failures)
	assert.Equal(t, resilience.StateClosed, c.Breaker().State())
}

func TestCallFailureIsAResult(t *testing.T) {
	c := New(newMathServer(t).URL)

	result, err := c.Call(context.Background(), "divide", map[string]interface{}{"a": 1, "b": 0})
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, types.ErrDivisionByZero, result.Error.Kind)

	result, err = c.Call(context.Background(), "integrate", nil)
	require.NoError(t, err)
	assert.Equal(t, types.ErrUnknownOperation, result.Error.Kind)
}

func TestServerErrorsTripBreaker(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	defer ts.Close()

	c := New(ts.URL,
		WithRetry(0, 0, 0),
		WithBreaker(resilience.Settings{
			Cooldown: time.Minute,
			ShouldTrip: func(counts resilience.Counts) bool {
				return counts.ConsecutiveFailures >= 2
			},
		}),
	)

	for i := 0; i < 2; i++ {
		_, err := c.Call(context.Background(), "add", []interface{}{1})
		assert.ErrorContains(t, err, "boom")
	}

	_, err := c.Call(context.Background(), "add", []interface{}{1})
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, resilience.StateOpen, c.Breaker().State())
}

func TestBadRequestsKeepBreakerClosed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid JSON"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, WithBreaker(resilience.Settings{
		ShouldTrip: func(counts resilience.Counts) bool { return counts.ConsecutiveFailures >= 1 },
	}))

	for i := 0; i < 3; i++ {
		_, err := c.Call(context.Background(), "add", []interface{}{1})
		assert.ErrorIs(t, err, ErrBadRequest)
		assert.ErrorContains(t, err, "invalid JSON")
	}
	assert.Equal(t, resilience.StateClosed, c.Breaker().State())
}

func TestCancelledContext(t *testing.T) {
	c := New(newMathServer(t).URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Call(ctx, "add", []interface{}{1})
	assert.ErrorIs(t, err, context.Canceled)
}
