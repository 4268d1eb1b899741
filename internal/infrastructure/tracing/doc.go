// Package tracing times HTTP requests and desktop events.
//
// Each request gets a span named "METHOD /route"; each WebSocket event gets
// a span named "ws.<event>" tagged with its desktop and connection. Spans
// are logged through zap by a single goroutine: at debug level when they
// succeed, at warn when they fail.
//
//	span, ctx := tracer.Start(ctx, "ws.pointer_move")
//	defer tracer.End(span)
//
// The browser may send X-Trace-ID to join its own trace; every response
// returns X-Trace-ID and X-Span-ID.
package tracing
