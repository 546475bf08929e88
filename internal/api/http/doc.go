// Package http provides the HTTP handlers of the drive server.
//
// Endpoints:
//   - GET  /health        root, mount status and registry stats
//   - GET  /tools         tool catalogue with input schemas
//   - POST /tools/:name   call a tool; the body is the argument object
//   - POST /rpc           one MCP JSON-RPC message per request
//
// Tool failures are answered with {"error":{"code","kind","message"}} and a
// status derived from the error kind (see StatusFor).
package http
