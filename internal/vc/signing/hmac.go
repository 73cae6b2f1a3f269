package signing

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"did-ecosystem/internal/vc/models"
)

// HMACProvider signs tokens with HS256 and verifies a credential by checking
// its jwt against the shared key. The requested algorithm is ignored: a
// symmetric key can only produce HS256.
type HMACProvider struct {
	key []byte
}

func NewHMACProvider(key string) (*HMACProvider, error) {
	if key == "" {
		return nil, errors.New("hmac signing key is required")
	}
	return &HMACProvider{key: []byte(key)}, nil
}

func (p *HMACProvider) Sign(req SignRequest) (models.Token, error) {
	claims, err := buildClaims(req)
	if err != nil {
		return "", err
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return models.Token(signed), nil
}

func (p *HMACProvider) Verify(cred *models.VerifiableCredential) bool {
	if cred == nil || cred.JWT == "" {
		return false
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(string(cred.JWT), claims, func(token *jwt.Token) (any, error) {
		return p.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return false
	}
	return claims.Issuer == "" || claims.Issuer == cred.Issuer
}
