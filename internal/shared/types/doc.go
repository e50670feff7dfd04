// Package types provides shared data structures for the mathd server.
//
// This package defines the types that cross the boundary between the
// math core and the transports (MCP stdio, HTTP, websocket).
//
// Core Types:
//   - Service: Provider definition with its tools
//   - Tool, Parameter: Advertised operation schema
//   - Result: Outcome of a single call
//   - ErrorReport, ErrorKind: Structured failure taxonomy
//
// Request Types:
//   - ExecuteRequest: HTTP tool execution
//   - DiscoverRequest: Intent-based tool search
//   - StreamMessage, StreamReply: WebSocket frames
//
// Example Usage:
//
//	result := registry.Execute(ctx, "divide", map[string]interface{}{
//	    "numbers": []interface{}{10, 4},
//	})
//	if !result.Success {
//	    log.Printf("%s: %s", result.Error.Kind, result.Error.Message)
//	}
package types
