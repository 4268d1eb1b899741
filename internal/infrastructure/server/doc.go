// Package server wires the desktop server together.
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (production or development)
//  3. Load the program catalog (built-ins plus CATALOG_DIR manifests)
//  4. Setup metrics, tracing, middleware and routes
//  5. Start HTTP server
//  6. Graceful shutdown on signal: close WebSocket sessions, drain HTTP,
//     flush spans and logs
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go srv.Run()
//	defer srv.Close()
package server
