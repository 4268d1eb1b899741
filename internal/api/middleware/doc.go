// Package middleware provides the HTTP middleware stack for the desktop
// server.
//
// Middleware stack includes:
//   - Recovery: Panic recovery logged through zap
//   - RequestLogger: One structured log line per request
//   - CORS: Cross-origin reads for the origins in an OriginPolicy
//   - RateLimit: Per-IP token bucket rate limiting
//
// Example Usage:
//
//	router.Use(middleware.Recovery(logger))
//	router.Use(middleware.RequestLogger(logger))
//	router.Use(middleware.CORS(middleware.DefaultOriginPolicy()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
