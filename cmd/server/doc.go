// Package main is the retrodesk command.
//
// The server renders a retro desktop: a page of launcher icons and program
// windows that can be dragged, minimized, maximized and closed. Each browser
// gets its own in-memory desktop over a WebSocket; the page re-renders from
// every snapshot the server sends back.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Serve on the default port
//	retrodesk serve
//
//	# Development mode with extra programs
//	retrodesk serve --dev --catalog ./programs --port 3000
//
//	# Inspect the merged program catalog
//	retrodesk programs --catalog ./programs -f yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
