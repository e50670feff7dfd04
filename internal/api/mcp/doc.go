// Package mcp serves the tool registry over the Model Context Protocol.
//
// Every advertised tool becomes an MCP tool whose input schema is derived
// from its parameters. A successful call returns the JSON-encoded value as
// text content; a failed call returns an error result whose text is the
// JSON ErrorReport, so agents can branch on its kind.
package mcp
