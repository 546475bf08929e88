// Package rpc implements the Model Context Protocol subset this server
// speaks: JSON-RPC 2.0 with initialize, ping, tools/list and tools/call.
//
// Handler is transport independent. StdioServer frames it as one JSON
// object per line on stdin/stdout; the HTTP and WebSocket transports in
// internal/api reuse the same Handler.
//
// Error codes:
//   - -32700 malformed JSON
//   - -32600 invalid request, including batches
//   - -32601 unknown method or unknown tool
//   - -32602 malformed tools/call params
//   - -32603 any tool failure, with the tool error kind in error.data
package rpc
