// Package secrets reads named secrets from the configured vault backend.
package secrets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"did-ecosystem/internal/platform/config"
	platformredis "did-ecosystem/internal/platform/redis"
)

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks Store

// Store returns the current value of a named secret. Implementations return
// sentinel.ErrNotFound for unknown names and sentinel.ErrUnavailable when the
// backend cannot answer.
type Store interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// NewStore selects a backend from the vault URI scheme: http(s) talks to a
// key vault, redis(s) reads keys from Redis.
func NewStore(vault config.Vault, redisCfg config.Redis) (Store, error) {
	u, err := url.Parse(vault.URI)
	if err != nil {
		return nil, fmt.Errorf("parse vault URI: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return NewKeyVaultStore(vault.URI, vault.Token, &http.Client{Timeout: vault.FetchTimeout}), nil
	case "redis", "rediss":
		client, err := platformredis.New(vault.URI, redisCfg)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, redisCfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported vault URI scheme %q", u.Scheme)
	}
}
