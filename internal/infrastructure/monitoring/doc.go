/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the deck
backend, tracking HTTP requests, card lifecycle, gesture activity, service
calls, and WebSocket connections.

# Features

- HTTP request metrics (latency, throughput, size)
- Card lifecycle metrics (open/close counts, active gauge)
- Gesture and snap docking counters
- Service call metrics (duration, errors)
- Session save/restore counters
- WebSocket connection and message metrics
- Uptime

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.RecordCardOpened("notes")
	metrics.RecordSnap("left")

	// Time operations
	timer := monitoring.NewTimer(metrics, "files", "files.read")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	router.GET("/metrics", monitoring.Handler())
*/
package monitoring
