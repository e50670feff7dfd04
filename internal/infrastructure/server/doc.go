// Package server assembles mathd: it builds the math catalog, the service
// registry and the observability stack from config, then serves either the
// MCP stdio transport or the HTTP API (REST, websocket stream, metrics).
package server
