/*
Package tracing follows requests through the deck service.

A span covers one operation: the HTTP middleware opens a span per
request, tags it with method, route, and status, and hands it to the
tracer when the request finishes. Finished spans drain through a
buffered queue into structured log lines; there is no external
collector, the log stream is the trace store.

Trace context rides on two headers, X-Trace-ID and X-Span-ID, so a
frontend that echoes them back can stitch its gesture stream to the
REST calls it triggered.

Typical wiring:

	tracer := tracing.New("deckd", logger)
	router.Use(tracing.HTTPMiddleware(tracer))

Manual spans work the same way:

	span, ctx := tracer.StartSpan(ctx, "session.restore")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
