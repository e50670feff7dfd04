package server

import (
	"compress/gzip"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/mathd/internal/infrastructure/config"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Transport = config.TransportHTTP
	cfg.Server.ShutdownSeconds = 1
	cfg.Logging.Level = "error"
	cfg.RateLimit.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewServerRegistersCatalog(t *testing.T) {
	s := newTestServer(t, testConfig())

	_, ok := s.Registry().Tool("hypotenuse")
	assert.True(t, ok)
	assert.Len(t, s.Registry().Tools(), 35)
}

func TestFactorialLimitFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Math.FactorialLimit = 10
	s := newTestServer(t, cfg)

	result := s.Registry().Execute(context.Background(), "factorial", map[string]interface{}{"n": 11})
	require.NotNil(t, result.Error)
	assert.Equal(t, types.ErrOverflowRisk, result.Error.Kind)
}

func TestHandlerRoutes(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, testConfig()).Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/tools/hypotenuse", "application/json", strings.NewReader(`{"a": 3, "b": 4}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var result types.Result
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(body, &result))
	assert.True(t, result.Success)
	assert.Equal(t, 5.0, result.Value)

	metrics, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	text, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(text), "mathd_tool_calls_total")
}

func TestHandlerCompressesResponses(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, testConfig()).Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/tools", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")

	// A transport with compression disabled leaves the body encoded
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"count":35`)
}

func TestHandlerUpgradesStream(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, testConfig()).Handler())
	defer ts.Close()

	header := http.Header{}
	header.Set("Accept-Encoding", "gzip")
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/stream", header)
	require.NoError(t, err)
	defer conn.Close()

	var welcome types.StreamReply
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, types.FrameSystem, welcome.Type)

	require.NoError(t, conn.WriteJSON(types.StreamMessage{ID: "c1", Tool: "sqrt", Arguments: map[string]interface{}{"x": 81}}))

	var reply types.StreamReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "c1", reply.ID)
	require.NotNil(t, reply.Result)
	assert.Equal(t, 9.0, reply.Result.Value)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, testConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestRateLimitApplied(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1, Enabled: true}
	ts := httptest.NewServer(newTestServer(t, cfg).Handler())
	defer ts.Close()

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Contains(t, statuses, http.StatusTooManyRequests)
}
