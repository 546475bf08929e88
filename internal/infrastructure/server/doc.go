// Package server assembles the drive server: provider, registry, JSON-RPC
// handler and the gin router, and runs them on stdio or HTTP.
package server
