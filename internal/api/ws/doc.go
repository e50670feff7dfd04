// Package ws streams tool calls over a WebSocket.
//
// Each text frame carries one call:
//
//	{"id": "1", "tool": "sqrt", "arguments": {"x": 16}}
//
// and is answered with a frame echoing the id:
//
//	{"id": "1", "type": "result", "result": {"success": true, "value": 4}, "timestamp": 1700000000}
//
// Frames without an id get a generated one. {"type": "ping"} is answered
// with a pong.
package ws
