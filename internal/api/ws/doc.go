// Package ws carries MCP JSON-RPC over WebSocket.
//
// Each text frame holds one JSON-RPC message; each response is written back
// as one text frame. Messages on a connection are handled in order, and
// notifications get no reply.
//
// Example Usage:
//
//	handler := ws.NewHandler(rpcHandler, logger, metrics)
//	router.GET("/ws", handler.HandleConnection)
package ws
