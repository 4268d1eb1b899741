/*
Package monitoring provides Prometheus metrics for the desktop server.

# Overview

Metrics cover HTTP traffic, WebSocket connections and messages, live desktop
sessions, open windows and window store operations. Each Metrics value owns
its registry so several servers can run side by side in one process.

Metrics satisfies desktop.Recorder, so a desktop reports its operations
directly:

	metrics := monitoring.NewMetrics()
	d := desktop.New(cat, logger).WithRecorder(metrics)

# Usage

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
