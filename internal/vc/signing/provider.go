// Package signing is the seam between credential logic and whatever produces
// the authenticity marker on tokens and credentials. The default provider is
// a deterministic mock: it performs no cryptography and offers no integrity
// guarantee. Swapping in a real provider does not change any caller.
package signing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"did-ecosystem/internal/platform/config"
	"did-ecosystem/internal/vc/models"
)

//go:generate mockgen -source=provider.go -destination=mocks/provider_mock.go -package=mocks Provider

// Provider produces and checks the signature attached to tokens and credentials.
type Provider interface {
	Sign(req SignRequest) (models.Token, error)
	Verify(cred *models.VerifiableCredential) bool
}

// SignRequest describes the token to mint.
type SignRequest struct {
	Issuer    string
	Subject   any
	Email     string
	TTL       time.Duration
	Algorithm string
	IssuedAt  time.Time
}

// Claims is the token payload.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewProvider selects the provider named in cfg.
func NewProvider(cfg config.Signing) (Provider, error) {
	switch cfg.Provider {
	case "", "mock":
		return NewMockProvider(), nil
	case "hmac":
		return NewHMACProvider(cfg.HMACKey)
	default:
		return nil, fmt.Errorf("unknown signature provider %q", cfg.Provider)
	}
}

func buildClaims(req SignRequest) (*Claims, error) {
	sub, err := subjectString(req.Subject)
	if err != nil {
		return nil, err
	}
	issuedAt := req.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}
	return &Claims{
		Email: req.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    req.Issuer,
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(req.TTL)),
		},
	}, nil
}

// subjectString keeps string subjects as-is and JSON-encodes anything else.
func subjectString(subject any) (string, error) {
	switch s := subject.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return "", fmt.Errorf("encode subject: %w", err)
		}
		return string(b), nil
	}
}
