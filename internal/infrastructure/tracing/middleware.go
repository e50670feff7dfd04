package tracing

import (
	"github.com/gin-gonic/gin"
)

// maxRequestIDLen bounds caller-supplied request IDs
const maxRequestIDLen = 128

// HTTPMiddleware creates Gin middleware that assigns every request an ID,
// echoes it in the response and records a span for it
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if incoming := c.GetHeader(RequestIDHeader); incoming != "" && len(incoming) <= maxRequestIDLen {
			ctx = WithRequestID(ctx, incoming)
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, span.RequestID)

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}
		if tool := c.Param("name"); tool != "" {
			span.SetTag("tool", tool)
		}
		span.Finish()
		tracer.Submit(span)
	}
}
