// Package http provides the HTTP handlers for the desktop server.
//
// Routes:
//   - GET /            desktop page with the startup programs open
//   - GET /archive     archive page
//   - GET /desktop.js  client script
//   - GET /programs    program catalog as JSON
//   - GET /icons/*path icon files, content type sniffed from the bytes
//   - GET /health      health check
//   - GET /metrics/json aggregate metrics as JSON
package http
