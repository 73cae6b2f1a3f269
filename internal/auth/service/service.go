// Package service authenticates callers and mints their login credential.
package service

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"did-ecosystem/internal/platform/metrics"
	"did-ecosystem/internal/validation"
	"did-ecosystem/internal/vc/models"
	"did-ecosystem/internal/vc/signing"
	dErrors "did-ecosystem/pkg/domain-errors"
	"did-ecosystem/pkg/requestcontext"
)

const (
	minPasswordLength = 7
	defaultEmailHost  = "@example.com"
)

var tracer = otel.Tracer("did-ecosystem/internal/auth/service")

// SecretFetcher returns a secret value, degrading instead of failing.
type SecretFetcher interface {
	Fetch(ctx context.Context, name string) string
}

// Service performs the demonstration login. It accepts any username whose
// password is long enough; it does not look users up anywhere.
type Service struct {
	cfg      Config
	secrets  SecretFetcher
	provider signing.Provider
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(cfg Config, secrets SecretFetcher, provider signing.Provider, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		secrets:  secrets,
		provider: provider,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates creds and, on success, issues the login credential.
func (s *Service) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	identity, err := s.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.IssueLoginCredential(ctx, identity)
}

// Authenticate validates the request and applies the password rule. The
// vault secret is read on every attempt but its value does not influence
// the decision.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*Identity, error) {
	ctx, span := tracer.Start(ctx, "auth.Authenticate")
	defer span.End()

	if creds.Username == "" || creds.Password == "" {
		s.metrics.IncrementAuthAttempt("invalid")
		span.SetStatus(codes.Error, "missing fields")
		return nil, dErrors.New(dErrors.CodeMissingFields, "Missing required fields: username and password")
	}
	if err := validation.Email(creds.Email); err != nil {
		s.metrics.IncrementAuthAttempt("invalid")
		span.SetStatus(codes.Error, "invalid email")
		return nil, err
	}

	if secret := s.secrets.Fetch(ctx, s.cfg.SecretName); secret == "" {
		s.logger.WarnContext(ctx, "vault secret is empty", "secret", s.cfg.SecretName)
	}

	if utf8.RuneCountInString(creds.Password) < minPasswordLength {
		s.metrics.IncrementAuthAttempt("rejected")
		span.SetStatus(codes.Error, "rejected")
		s.logger.InfoContext(ctx, "authentication rejected", "username", creds.Username)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Authentication failed")
	}

	email := creds.Email
	if email == "" {
		email = creds.Username + defaultEmailHost
	}

	s.metrics.IncrementAuthAttempt("success")
	return &Identity{Username: creds.Username, Email: email}, nil
}

// IssueLoginCredential mints the session token and the minimal credential
// that wraps it.
func (s *Service) IssueLoginCredential(ctx context.Context, identity *Identity) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "auth.IssueLoginCredential")
	defer span.End()

	now := requestcontext.Now(ctx)
	token, err := s.provider.Sign(signing.SignRequest{
		Issuer:    s.cfg.IssuerDID,
		Subject:   identity.Username,
		Email:     identity.Email,
		TTL:       s.cfg.TokenTTL,
		Algorithm: s.cfg.TokenAlgorithm,
		IssuedAt:  now,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sign failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.logger.InfoContext(ctx, "user authenticated", "username", identity.Username)
	return &AuthResult{
		Success: true,
		Message: "Authentication successful",
		Credential: &models.VerifiableCredential{
			Type:         models.Types{models.TypeVerifiableCredential},
			Issuer:       s.cfg.IssuerDID,
			IssuanceDate: models.FormatTime(now),
			CredentialSubject: models.Subject{
				"username": identity.Username,
				"email":    identity.Email,
			},
			JWT: token,
		},
		Token:     token,
		ExpiresIn: int64(s.cfg.TokenTTL.Seconds()),
	}, nil
}
