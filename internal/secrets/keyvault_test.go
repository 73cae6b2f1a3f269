package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"did-ecosystem/internal/platform/config"
	"did-ecosystem/pkg/platform/sentinel"
)

func TestKeyVaultStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "7.4", r.URL.Query().Get("api-version"))

		switch r.URL.Path {
		case "/secrets/openai-api-key":
			assert.Equal(t, "Bearer vault-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"value":"sk-test","id":"https://vault/secrets/openai-api-key/1"}`))
		case "/secrets/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	store := NewKeyVaultStore(server.URL+"/", "vault-token", server.Client())
	ctx := context.Background()

	t.Run("reads the secret value", func(t *testing.T) {
		value, err := store.GetSecret(ctx, "openai-api-key")
		require.NoError(t, err)
		assert.Equal(t, "sk-test", value)
	})

	t.Run("unknown secret", func(t *testing.T) {
		_, err := store.GetSecret(ctx, "nope")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("vault failure", func(t *testing.T) {
		_, err := store.GetSecret(ctx, "broken")
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})

	t.Run("unreachable vault", func(t *testing.T) {
		down := httptest.NewServer(http.NotFoundHandler())
		down.Close()

		_, err := NewKeyVaultStore(down.URL, "", nil).GetSecret(ctx, "openai-api-key")
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})
}

func TestNewStore(t *testing.T) {
	t.Run("https selects the key vault", func(t *testing.T) {
		store, err := NewStore(config.Vault{URI: "https://myvault.vault.azure.net"}, config.Redis{})
		require.NoError(t, err)
		assert.IsType(t, &KeyVaultStore{}, store)
	})

	t.Run("redis selects the redis store", func(t *testing.T) {
		store, err := NewStore(config.Vault{URI: "redis://localhost:6379/0"}, config.Redis{KeyPrefix: "secrets:"})
		require.NoError(t, err)
		require.IsType(t, &RedisStore{}, store)
		assert.NoError(t, store.(*RedisStore).Close())
	})

	t.Run("other schemes are rejected", func(t *testing.T) {
		_, err := NewStore(config.Vault{URI: "ftp://vault"}, config.Redis{})
		assert.Error(t, err)
	})
}
