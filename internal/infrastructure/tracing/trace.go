package tracing

import (
	"context"
	"time"

	"github.com/HobbyCoders/deck/internal/shared/id"
	"go.uber.org/zap"
)

// TraceID ties every span of one request flow together
type TraceID string

// SpanID identifies a single operation within a trace
type SpanID string

type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// spanQueueSize bounds the drain backlog; spans past it are dropped
const spanQueueSize = 1000

// Span records one traced operation
type Span struct {
	TraceID    TraceID
	SpanID     SpanID
	ParentID   SpanID
	Name       string
	Service    string
	StartTime  time.Time
	Duration   time.Duration
	Tags       map[string]string
	Error      error
	StatusCode int
}

// Finish stamps the span's duration
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// SetTag attaches a key/value annotation
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetStatus records the HTTP status the operation produced
func (s *Span) SetStatus(code int) {
	s.StatusCode = code
}

// SetError marks the span failed
func (s *Span) SetError(err error) {
	s.Error = err
	if s.StatusCode < 500 {
		s.StatusCode = 500
	}
}

// Tracer drains finished spans into the structured log
type Tracer struct {
	service string
	logger  *zap.Logger
	queue   chan *Span
}

// New creates a tracer and starts its drain goroutine
func New(service string, logger *zap.Logger) *Tracer {
	t := &Tracer{
		service: service,
		logger:  logger,
		queue:   make(chan *Span, spanQueueSize),
	}
	go t.drain()
	return t
}

// StartSpan opens a span, inheriting the trace from ctx or minting a
// fresh one. The returned context carries the new span as the parent
// for anything started beneath it.
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	if traceID == "" {
		traceID = TraceID(id.NewRequestID())
	}
	parentID, _ := ctx.Value(spanIDKey).(SpanID)

	span := &Span{
		TraceID:   traceID,
		SpanID:    SpanID(id.NewRequestID()),
		ParentID:  parentID,
		Name:      name,
		Service:   t.service,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}

	ctx = context.WithValue(ctx, traceIDKey, traceID)
	ctx = context.WithValue(ctx, spanIDKey, span.SpanID)
	return span, ctx
}

// Submit queues a finished span. Never blocks the request path: when
// the drain falls behind, the span is dropped with a warning instead.
func (t *Tracer) Submit(span *Span) {
	select {
	case t.queue <- span:
	default:
		t.logger.Warn("trace queue full, dropping span",
			zap.String("trace_id", string(span.TraceID)),
			zap.String("operation", span.Name))
	}
}

func (t *Tracer) drain() {
	for span := range t.queue {
		t.emit(span)
	}
}

// emit writes one span as a structured log line
func (t *Tracer) emit(span *Span) {
	fields := []zap.Field{
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.String("operation", span.Name),
		zap.String("service", span.Service),
		zap.Duration("duration", span.Duration),
		zap.Int("status", span.StatusCode),
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	if span.Error != nil {
		t.logger.Error("span finished with error", append(fields, zap.Error(span.Error))...)
		return
	}
	t.logger.Info("span finished", fields...)
}

// ExtractTraceContext threads upstream trace headers into ctx so
// spans started from the request join the caller's trace.
func ExtractTraceContext(ctx context.Context, traceID, spanID string) context.Context {
	if traceID != "" {
		ctx = context.WithValue(ctx, traceIDKey, TraceID(traceID))
	}
	if spanID != "" {
		ctx = context.WithValue(ctx, spanIDKey, SpanID(spanID))
	}
	return ctx
}
