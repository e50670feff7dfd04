// Package client is a Go SDK for the mathd HTTP API.
//
// Requests are retried on transport errors and 5xx answers and pass
// through a circuit breaker, so a dead server fails fast instead of
// stalling every caller:
//
//	c := client.New("http://localhost:8000")
//	result, err := c.Call(ctx, "hypotenuse", map[string]any{"a": 3, "b": 4})
package client
