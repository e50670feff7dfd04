// Package http provides the REST surface of the tool server.
//
// Routes:
//   - GET  /                 banner
//   - GET  /health           registry and metrics snapshot
//   - GET  /tools            advertised tools (?group= filters)
//   - GET  /tools/discover   intent search (?q=, ?limit=)
//   - POST /tools/discover   intent search ({"query", "limit"})
//   - GET  /tools/:name      one tool's schema
//   - POST /tools/:name      call with the body as raw arguments
//   - POST /tools/execute    call with {"tool", "arguments"}
//
// Call endpoints always answer 200 with a Result once the body parses;
// computation failures travel inside it as an ErrorReport.
package http
