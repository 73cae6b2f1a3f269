// Package service implements credential issuance and verification.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"did-ecosystem/internal/platform/metrics"
	"did-ecosystem/internal/validation"
	"did-ecosystem/internal/vc/models"
	"did-ecosystem/internal/vc/signing"
	dErrors "did-ecosystem/pkg/domain-errors"
	"did-ecosystem/pkg/requestcontext"
)

const (
	credentialValidity = 365 * 24 * time.Hour
	credentialTokenTTL = 31536000 * time.Second
	credentialTokenAlg = "RS256"
	credentialIDPrefix = "urn:uuid:"
)

var tracer = otel.Tracer("did-ecosystem/internal/vc/service")

// IssueRequest carries the caller-supplied parts of a new credential.
type IssueRequest struct {
	Issuer            string         `json:"issuer"`
	CredentialSubject models.Subject `json:"credentialSubject"`
	Type              models.Types   `json:"type"`
	Claims            models.Claims  `json:"claims"`
}

// Service issues and verifies verifiable credentials. It keeps no state
// between calls.
type Service struct {
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

func New(provider signing.Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue builds and signs a credential. Every call yields a fresh id, even for
// identical input.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*models.VerifiableCredential, error) {
	ctx, span := tracer.Start(ctx, "vc.Issue")
	defer span.End()

	if req.Issuer == "" || req.CredentialSubject == nil {
		span.SetStatus(codes.Error, "missing fields")
		return nil, dErrors.New(dErrors.CodeMissingFields, "Missing required fields: credentialSubject and issuer")
	}
	if err := validation.DID(req.Issuer); err != nil {
		span.SetStatus(codes.Error, "invalid issuer")
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidIssuer, "Invalid issuer DID format")
	}

	now := requestcontext.Now(ctx).UTC().Truncate(time.Millisecond)

	types := req.Type
	if types == nil {
		types = models.Types{models.TypeVerifiableCredential}
	}
	claims := req.Claims
	if claims == nil {
		claims = models.Claims{}
	}

	token, err := s.provider.Sign(signing.SignRequest{
		Issuer:    req.Issuer,
		Subject:   req.CredentialSubject,
		TTL:       credentialTokenTTL,
		Algorithm: credentialTokenAlg,
		IssuedAt:  now,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sign failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign credential")
	}

	cred := &models.VerifiableCredential{
		Context:           models.NewContext(models.ContextV1),
		ID:                credentialIDPrefix + uuid.NewString(),
		Type:              types,
		Issuer:            req.Issuer,
		IssuanceDate:      models.FormatTime(now),
		ExpirationDate:    models.FormatTime(now.Add(credentialValidity)),
		CredentialSubject: req.CredentialSubject,
		Claims:            claims,
		JWT:               token,
	}

	span.SetAttributes(attribute.String("vc.id", cred.ID), attribute.String("vc.issuer", cred.Issuer))
	s.metrics.IncrementCredentialsIssued()
	s.logger.InfoContext(ctx, "credential issued", "credential_id", cred.ID, "issuer", cred.Issuer)
	return cred, nil
}

// Verify checks structure, then signature, then expiry, stopping at the
// first failure. The credential is not modified.
func (s *Service) Verify(ctx context.Context, cred *models.VerifiableCredential) (*models.VerificationReport, error) {
	ctx, span := tracer.Start(ctx, "vc.Verify")
	defer span.End()

	report, outcome, err := s.verify(ctx, cred)
	s.metrics.IncrementVerification(outcome)
	span.SetAttributes(attribute.String("vc.outcome", outcome))
	if err != nil {
		span.SetStatus(codes.Error, outcome)
		s.logger.InfoContext(ctx, "credential rejected", "outcome", outcome, "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "credential verified", "issuer", report.Issuer)
	return report, nil
}

func (s *Service) verify(ctx context.Context, cred *models.VerifiableCredential) (*models.VerificationReport, string, error) {
	if err := validation.Credential(cred); err != nil {
		return nil, "malformed", dErrors.Wrap(err, dErrors.CodeMalformed, "Invalid credential format. Missing required fields.")
	}

	if !s.provider.Verify(cred) {
		return nil, "invalid_signature", dErrors.New(dErrors.CodeInvalidSignature, "Invalid credential signature")
	}

	expiration := models.NeverExpires
	if cred.ExpirationDate != "" {
		expiresAt, err := models.ParseTime(cred.ExpirationDate)
		if err != nil {
			return nil, "malformed", dErrors.Wrap(err, dErrors.CodeMalformed, "Invalid expirationDate format")
		}
		if expiresAt.Before(requestcontext.Now(ctx)) {
			return nil, "expired", dErrors.New(dErrors.CodeExpired, "Credential has expired")
		}
		expiration = cred.ExpirationDate
	}

	return &models.VerificationReport{
		IsValid:        true,
		Issuer:         cred.Issuer,
		IssuanceDate:   cred.IssuanceDate,
		ExpirationDate: expiration,
		Subject:        cred.CredentialSubject,
	}, "valid", nil
}
