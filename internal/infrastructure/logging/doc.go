// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Every logger writes to stderr. When the server speaks MCP over stdio,
// stdout carries protocol frames only, so diagnostics must never go there.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level})
//	logger.Info("Drive root resolved", zap.String("path", root.Path()))
//	logger.Error("Tool call failed", zap.Error(err))
package logging
