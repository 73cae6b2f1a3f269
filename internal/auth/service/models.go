package service

import (
	"time"

	"did-ecosystem/internal/vc/models"
)

// Config fixes the identity the service issues login tokens as.
type Config struct {
	IssuerDID      string
	TokenTTL       time.Duration
	SecretName     string
	TokenAlgorithm string
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		IssuerDID:      "did:example:issuer",
		TokenTTL:       3600 * time.Second,
		SecretName:     "openai-api-key",
		TokenAlgorithm: "HS256",
	}
}

// Credentials is a login attempt.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Identity is an accepted caller.
type Identity struct {
	Username string
	Email    string
}

// AuthResult is the login response body.
type AuthResult struct {
	Success    bool                         `json:"success"`
	Message    string                       `json:"message"`
	Credential *models.VerifiableCredential `json:"credential"`
	Token      models.Token                 `json:"token"`
	ExpiresIn  int64                        `json:"expiresIn"`
}
