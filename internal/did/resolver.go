package did

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"did-ecosystem/internal/platform/metrics"
	dErrors "did-ecosystem/pkg/domain-errors"
)

var tracer = otel.Tracer("did-ecosystem/internal/did")

// MethodResolver resolves DIDs of one method into documents.
type MethodResolver interface {
	Resolve(ctx context.Context, id DID) (*Document, error)
}

// Resolver validates and parses DIDs, then dispatches on the DID method.
// Methods without a registered strategy use the fallback.
type Resolver struct {
	methods  map[string]MethodResolver
	fallback MethodResolver
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type Option func(r *Resolver)

// WithMethod registers a strategy for a DID method.
func WithMethod(method string, strategy MethodResolver) Option {
	return func(r *Resolver) {
		r.Register(method, strategy)
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver constructs a Resolver around a fallback strategy.
func NewResolver(fallback MethodResolver, opts ...Option) *Resolver {
	r := &Resolver{
		methods:  make(map[string]MethodResolver),
		fallback: fallback,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a strategy to a DID method. It is not safe to call while
// requests are being served.
func (r *Resolver) Register(method string, strategy MethodResolver) {
	r.methods[method] = strategy
}

// Resolve turns a DID string into its document. Shape errors are returned
// before any strategy runs.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Document, error) {
	ctx, span := tracer.Start(ctx, "did.Resolve")
	defer span.End()

	id, err := Parse(raw)
	if err != nil {
		span.SetStatus(codes.Error, "invalid did")
		return nil, err
	}
	span.SetAttributes(attribute.String("did.method", id.Method))

	strategy, ok := r.methods[id.Method]
	if !ok {
		strategy = r.fallback
	}

	doc, err := strategy.Resolve(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolution failed")
		r.logger.ErrorContext(ctx, "did resolution failed", "did", raw, "method", id.Method, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve DID")
	}

	r.metrics.IncrementDIDResolution(id.Method)
	return doc, nil
}
