// Package service provides the tool registry.
//
// Providers register a service definition; the registry indexes every tool
// by name, rejects duplicates and dispatches calls to the owning provider.
// Each call is tagged with a request ID, logged and timed.
//
// Example Usage:
//
//	registry := service.NewRegistry(service.WithLogger(log), service.WithMetrics(m))
//	registry.Register(filesystem.New(root))
//	result, err := registry.Execute(ctx, "read_file", params, &types.Context{Transport: "stdio"})
package service
