package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// ErrVaultNotConfigured is returned when no secret store endpoint is set.
// The process cannot start without one.
var ErrVaultNotConfigured = errors.New("KEY_VAULT_URI not configured")

// Config is the process-wide configuration, built once at startup and passed
// down explicitly.
type Config struct {
	Server  Server
	Vault   Vault
	Redis   Redis
	Signing Signing
	DID     DID
	Log     Log
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Vault points at the secret store holding the demonstration API key.
// URI scheme selects the backend: http(s) for a key vault, redis(s) for Redis.
type Vault struct {
	URI          string
	Token        string
	SecretName   string
	FetchTimeout time.Duration

	// BreakerFailures consecutive backend failures open the circuit; while
	// open, one trial call is let through per BreakerCooldown.
	BreakerFailures int
	BreakerCooldown time.Duration
}

// Redis tunes the go-redis pool when the vault URI is a redis:// URL.
type Redis struct {
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	KeyPrefix    string
}

// Signing selects the signature provider.
type Signing struct {
	Provider string // "mock" or "hmac"
	HMACKey  string
}

// DID configures the synthetic DID documents.
type DID struct {
	ServiceEndpoint string
	LinkedDomain    string
}

// Log configures the slog handler.
type Log struct {
	Level  string
	Format string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (*Config, error) {
	vaultURI := firstNonEmpty(os.Getenv("KEY_VAULT_URI"), os.Getenv("KeyVaultUri"))
	if vaultURI == "" {
		return nil, ErrVaultNotConfigured
	}
	if !govalidator.IsRequestURL(vaultURI) {
		return nil, fmt.Errorf("KEY_VAULT_URI %q is not a valid URL", vaultURI)
	}

	fetchTimeout, err := durationEnv("SECRET_FETCH_TIMEOUT", 2*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	breakerCooldown, err := durationEnv("VAULT_BREAKER_COOLDOWN", 30*time.Second)
	if err != nil {
		return nil, err
	}
	breakerFailures, err := intEnv("VAULT_BREAKER_FAILURES", 3)
	if err != nil {
		return nil, err
	}
	if breakerFailures < 1 {
		return nil, fmt.Errorf("VAULT_BREAKER_FAILURES must be at least 1, got %d", breakerFailures)
	}

	provider := strings.ToLower(envOr("SIGNATURE_PROVIDER", "mock"))
	if provider != "mock" && provider != "hmac" {
		return nil, fmt.Errorf("SIGNATURE_PROVIDER must be mock or hmac, got %q", provider)
	}
	hmacKey := os.Getenv("JWT_SIGNING_KEY")
	if provider == "hmac" && hmacKey == "" {
		return nil, errors.New("JWT_SIGNING_KEY is required when SIGNATURE_PROVIDER=hmac")
	}

	poolSize, err := intEnv("REDIS_POOL_SIZE", 10)
	if err != nil {
		return nil, err
	}
	minIdle, err := intEnv("REDIS_MIN_IDLE_CONNS", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: Server{
			Addr:            envOr("DID_GATEWAY_ADDR", ":8080"),
			ShutdownTimeout: shutdownTimeout,
		},
		Vault: Vault{
			URI:          vaultURI,
			Token:        os.Getenv("KEY_VAULT_TOKEN"),
			SecretName:   envOr("SECRET_NAME", "openai-api-key"),
			FetchTimeout: fetchTimeout,

			BreakerFailures: breakerFailures,
			BreakerCooldown: breakerCooldown,
		},
		Redis: Redis{
			PoolSize:     poolSize,
			MinIdleConns: minIdle,
			DialTimeout:  time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			KeyPrefix:    envOr("REDIS_SECRET_PREFIX", "secrets:"),
		},
		Signing: Signing{
			Provider: provider,
			HMACKey:  hmacKey,
		},
		DID: DID{
			ServiceEndpoint: envOr("DID_SERVICE_ENDPOINT", "https://did-ecosystem.azurewebsites.net/api"),
			LinkedDomain:    envOr("DID_LINKED_DOMAIN", "https://identity.did-ecosystem.local"),
		},
		Log: Log{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	return n, nil
}
