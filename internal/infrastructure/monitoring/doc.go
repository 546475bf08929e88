/*
Package monitoring provides Prometheus metrics for the drive server.

# Metrics

  - drive_tool_calls_total{tool,status}, drive_tool_duration_seconds{tool}
  - drive_tool_errors_total{tool,kind}
  - drive_rpc_messages_total{transport,method}
  - drive_http_requests_total{method,path,status}, drive_http_request_duration_seconds
  - drive_ws_connections, drive_uptime_seconds

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "read_file")
	// ... perform operation ...
	timer.Stop("success")
*/
package monitoring
