package secrets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"did-ecosystem/pkg/platform/circuit"
	"did-ecosystem/pkg/platform/sentinel"
)

// BreakerStore fails fast while the backend keeps erroring. Once the circuit
// opens, calls return sentinel.ErrUnavailable without touching the backend,
// except for one trial call per cooldown window. A not-found answer counts as a
// healthy backend.
type BreakerStore struct {
	next     Store
	breaker  *circuit.Breaker
	cooldown time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu        sync.Mutex
	nextTrial time.Time
}

func NewBreakerStore(next Store, breaker *circuit.Breaker, cooldown time.Duration, logger *slog.Logger) *BreakerStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &BreakerStore{
		next:     next,
		breaker:  breaker,
		cooldown: cooldown,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *BreakerStore) GetSecret(ctx context.Context, name string) (string, error) {
	if s.breaker.IsOpen() && !s.claimTrial() {
		return "", fmt.Errorf("secret %q: circuit %s open: %w", name, s.breaker.Name(), sentinel.ErrUnavailable)
	}

	value, err := s.next.GetSecret(ctx, name)
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "secret store circuit closed", "circuit", s.breaker.Name(), "state", s.breaker.State().String())
		}
		return value, err
	}

	if _, change := s.breaker.RecordFailure(); change.Opened {
		s.mu.Lock()
		s.nextTrial = s.now().Add(s.cooldown)
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "secret store circuit opened", "circuit", s.breaker.Name(), "state", s.breaker.State().String(), "error", err)
	}
	return "", err
}

func (s *BreakerStore) claimTrial() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Before(s.nextTrial) {
		return false
	}
	s.nextTrial = now.Add(s.cooldown)
	return true
}

// Close closes the wrapped store when it holds resources.
func (s *BreakerStore) Close() error {
	if c, ok := s.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
