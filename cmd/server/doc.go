// Package main is the entry point for the Proton Drive MCP server.
//
// The server exposes the local Proton Drive sync folder to MCP clients
// through seven tools. Every path is confined to the drive root.
//
// Configuration (later sources win):
//   - Defaults
//   - Config file given by --config or DRIVE_CONFIG (.toml, .yaml)
//   - Environment variables (PROTON_DRIVE_PATH, MCP_TRANSPORT, PORT, ...)
//   - CLI flags
//
// Usage:
//
//	# stdio, as launched by an MCP client
//	proton-drive-mcp
//
//	# HTTP and WebSocket on 127.0.0.1:8765
//	proton-drive-mcp serve --transport http
//
//	# Diagnose the drive folder
//	proton-drive-mcp check --root "$HOME/Proton Drive"
//
// Logs always go to stderr; stdout carries only protocol frames.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
