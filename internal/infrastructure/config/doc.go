// Package config provides layered configuration for the drive server.
//
// Sources, lowest precedence first:
//   - Default(): stdio transport, 127.0.0.1:8765, info logging
//   - an optional TOML or YAML file (--config or DRIVE_CONFIG)
//   - environment variables
//
// Environment Variables:
//   - PROTON_DRIVE_PATH: drive root override
//   - MCP_TRANSPORT: stdio or http
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//
// Example file (drive.toml):
//
//	[drive]
//	path = "/home/me/ProtonDrive"
//
//	[transport]
//	mode = "http"
//
//	[server]
//	port = "9000"
package config
