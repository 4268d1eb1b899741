// Package config provides 12-factor configuration management for the desktop
// server.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, shutdown timeout)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Desktop: Site metadata, catalog and icon directories, WebSocket limits
//   - Compression: gzip response compression
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Addr())
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - SITE_TITLE, SITE_URL, CATALOG_DIR, ICONS_DIR, STARTUP_PROGRAMS
//   - WS_MAX_MESSAGE_BYTES, WS_EVENTS_PER_SECOND, WS_EVENT_BURST
//   - GZIP_ENABLED
package config
