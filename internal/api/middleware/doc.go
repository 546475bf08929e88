// Package middleware provides the HTTP middleware for the drive server.
//
// Middleware stack includes:
//   - RequestID: request correlation through the X-Request-ID header
//   - CORS: cross-origin access for browser-based MCP clients
//   - RateLimit: per-IP token bucket limiting of tool calls
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
