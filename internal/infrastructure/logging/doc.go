// Package logging provides structured logging using uber/zap.
//
// Two encodings are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// When the server speaks MCP over stdio, stdout carries protocol frames,
// so ConfigFor routes logs to stderr instead.
//
// Example Usage:
//
//	logger, err := logging.New(logging.ConfigFor("info", false, false))
//	logger.Named("http").Info("Server starting", zap.String("port", "8000"))
//	logger.Error("Failed to bind", zap.Error(err))
package logging
