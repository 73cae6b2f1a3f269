package secrets

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"did-ecosystem/internal/platform/metrics"
)

// Placeholder is returned whenever a secret cannot be read in time.
const Placeholder = "placeholder"

var tracer = otel.Tracer("did-ecosystem/internal/secrets")

// Fetcher reads secrets with a bounded wait and never fails. Concurrent
// reads of the same name share one backend call.
type Fetcher struct {
	store   Store
	timeout time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type FetcherOption func(*Fetcher)

func WithMetrics(m *metrics.Metrics) FetcherOption {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

func NewFetcher(store Store, timeout time.Duration, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		store:   store,
		timeout: timeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the secret value, or Placeholder if the store errors or does
// not answer within the configured timeout.
func (f *Fetcher) Fetch(ctx context.Context, name string) string {
	ctx, span := tracer.Start(ctx, "secrets.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("secret.name", name))

	ch := f.group.DoChan(name, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()
		return f.store.GetSecret(fetchCtx, name)
	})

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Err != nil {
			return f.fallback(ctx, name, res.Err)
		}
		span.SetAttributes(attribute.Bool("secret.shared", res.Shared))
		return res.Val.(string)
	case <-timer.C:
		return f.fallback(ctx, name, context.DeadlineExceeded)
	case <-ctx.Done():
		return f.fallback(ctx, name, ctx.Err())
	}
}

func (f *Fetcher) fallback(ctx context.Context, name string, err error) string {
	f.metrics.IncrementSecretFallback()
	f.logger.WarnContext(ctx, "secret unavailable, using placeholder", "secret", name, "error", err)
	return Placeholder
}
