package tracing

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/retrodesk/internal/shared/id"
)

// Headers that carry a trace between the browser and the server
const (
	TraceHeader = "X-Trace-ID"
	SpanHeader  = "X-Span-ID"
)

// queueSize bounds the spans waiting to be logged
const queueSize = 1024

type (
	// TraceID names one request or one WebSocket event chain
	TraceID string
	// SpanID names one timed step inside a trace
	SpanID string
)

type ctxKey int

const (
	traceKey ctxKey = iota
	spanKey
)

// Span times one HTTP request or one desktop event
type Span struct {
	TraceID  TraceID
	SpanID   SpanID
	ParentID SpanID
	Name     string
	Start    time.Time
	Duration time.Duration
	Status   int
	Err      error
	Tags     map[string]string
}

// SetTag attaches a string attribute
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetStatus records the response status
func (s *Span) SetStatus(code int) {
	s.Status = code
}

// SetError marks the span failed. A span without a status becomes a 500.
func (s *Span) SetError(err error) {
	s.Err = err
	if s.Status == 0 {
		s.Status = 500
	}
}

// Tracer hands finished spans to one goroutine that logs them, so request
// handlers never block on logging.
type Tracer struct {
	service string
	logger  *zap.Logger
	queue   chan *Span
	done    chan struct{}
	dropped atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// New starts a tracer for service
func New(service string, logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracer{
		service: service,
		logger:  logger.With(zap.String("service", service)),
		queue:   make(chan *Span, queueSize),
		done:    make(chan struct{}),
	}
	go t.run()
	return t
}

// Start opens a span under the trace in ctx, or a new trace when ctx has
// none. The returned context carries the span as parent for nested spans.
func (t *Tracer) Start(ctx context.Context, name string) (*Span, context.Context) {
	traceID := TraceIDFrom(ctx)
	if traceID == "" {
		traceID = TraceID(id.NewRequestID())
	}

	span := &Span{
		TraceID:  traceID,
		SpanID:   SpanID(id.NewSpanID()),
		ParentID: SpanIDFrom(ctx),
		Name:     name,
		Start:    time.Now(),
		Tags:     map[string]string{},
	}
	return span, WithIDs(ctx, span.TraceID, span.SpanID)
}

// End stops the span clock and queues it for logging. When the queue is
// full the span is counted as dropped. Spans ended after Close are ignored.
func (t *Tracer) End(span *Span) {
	span.Duration = time.Since(span.Start)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}

	select {
	case t.queue <- span:
	default:
		t.dropped.Add(1)
	}
}

// Dropped returns how many spans were discarded on a full queue
func (t *Tracer) Dropped() int64 {
	return t.dropped.Load()
}

// Close logs every queued span and stops the tracer
func (t *Tracer) Close() {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.queue)
	}
	t.mu.Unlock()
	<-t.done

	if n := t.Dropped(); n > 0 {
		t.logger.Warn("Spans dropped on a full queue", zap.Int64("dropped", n))
	}
}

func (t *Tracer) run() {
	defer close(t.done)
	for span := range t.queue {
		t.log(span)
	}
}

func (t *Tracer) log(span *Span) {
	fields := make([]zap.Field, 0, 6+len(span.Tags))
	fields = append(fields,
		zap.String("op", span.Name),
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.Duration("took", span.Duration),
	)
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}
	if span.Status != 0 {
		fields = append(fields, zap.Int("status", span.Status))
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	if span.Err != nil {
		t.logger.Warn("Span failed", append(fields, zap.Error(span.Err))...)
		return
	}
	t.logger.Debug("Span", fields...)
}

// WithIDs returns ctx carrying a trace and parent span. Empty IDs are not
// stored.
func WithIDs(ctx context.Context, traceID TraceID, spanID SpanID) context.Context {
	if traceID != "" {
		ctx = context.WithValue(ctx, traceKey, traceID)
	}
	if spanID != "" {
		ctx = context.WithValue(ctx, spanKey, spanID)
	}
	return ctx
}

// TraceIDFrom returns the trace in ctx, or ""
func TraceIDFrom(ctx context.Context) TraceID {
	v, _ := ctx.Value(traceKey).(TraceID)
	return v
}

// SpanIDFrom returns the innermost span in ctx, or ""
func SpanIDFrom(ctx context.Context) SpanID {
	v, _ := ctx.Value(spanKey).(SpanID)
	return v
}
