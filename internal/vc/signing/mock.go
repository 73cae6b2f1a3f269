package signing

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"did-ecosystem/internal/vc/models"
)

// MockSignature is the constant third segment of every mock token.
const MockSignature = "mock_signature"

// MockProvider encodes a real JWT header and payload but appends a constant
// placeholder instead of a signature. Verify never inspects jwt or proof
// contents; it only checks that some authenticity marker is present.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Sign(req SignRequest) (models.Token, error) {
	method := jwt.GetSigningMethod(req.Algorithm)
	if method == nil {
		return "", fmt.Errorf("unsupported signing algorithm %q", req.Algorithm)
	}
	claims, err := buildClaims(req)
	if err != nil {
		return "", err
	}
	unsigned, err := jwt.NewWithClaims(method, claims).SigningString()
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return models.Token(unsigned + "." + MockSignature), nil
}

func (p *MockProvider) Verify(cred *models.VerifiableCredential) bool {
	if cred == nil {
		return false
	}
	return cred.HasJWT() || cred.HasProof() || len(cred.CredentialSubject) > 0
}
