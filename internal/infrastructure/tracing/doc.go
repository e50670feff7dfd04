/*
Package tracing assigns request IDs and records request spans.

Every HTTP request gets an ID, taken from the X-Request-ID header when the
caller supplies one and generated otherwise. The ID travels in the request
context so tool-call logs can be correlated with the request that caused
them, and it is echoed back in the response header.

# Usage

	tracer := tracing.New("mathd", logger.Logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Anywhere downstream
	requestID := tracing.RequestID(ctx)

Finished spans are buffered (1000) and logged by a background collector;
when the buffer is full spans are dropped rather than blocking the request.
*/
package tracing
