package tracing

import (
	"github.com/gin-gonic/gin"
)

// HTTPMiddleware opens a span per request named after the matched route.
// A trace sent by the browser in X-Trace-ID is continued; the response
// always carries the trace and span IDs.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithIDs(c.Request.Context(),
			TraceID(c.GetHeader(TraceHeader)),
			SpanID(c.GetHeader(SpanHeader)),
		)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		span, ctx := tracer.Start(ctx, c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, string(span.TraceID))
		c.Header(SpanHeader, string(span.SpanID))

		c.Next()

		span.SetStatus(c.Writer.Status())
		if err := c.Errors.Last(); err != nil {
			span.SetError(err)
		}
		tracer.End(span)
	}
}
