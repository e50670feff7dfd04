/*
Package monitoring provides Prometheus metrics for the math server.

# Overview

Metrics live on a private registry (plus the Go runtime and process
collectors) so tests can build as many collectors as they like without
duplicate-registration panics.

# Metrics

  - mathd_http_requests_total, mathd_http_request_duration_seconds,
    mathd_http_request_size_bytes, mathd_http_response_size_bytes
  - mathd_tool_calls_total{tool,status}, mathd_tool_duration_seconds{tool}
  - mathd_tool_errors_total{tool,kind}
  - mathd_ws_connections, mathd_ws_messages_total{direction}
  - mathd_uptime_seconds

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

*Metrics satisfies the service registry's Observer interface, so every
tool call is counted regardless of the transport it arrived on.
*/
package monitoring
