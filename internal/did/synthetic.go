package did

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"io"

	mb "github.com/multiformats/go-multibase"
	varint "github.com/multiformats/go-varint"
	"golang.org/x/crypto/hkdf"

	"did-ecosystem/internal/platform/config"
	"did-ecosystem/internal/vc/models"
	"did-ecosystem/pkg/requestcontext"
)

const (
	// multicodecEd25519PubKey is the ed25519-pub multicodec code.
	multicodecEd25519PubKey = 0xed

	verificationKeyType = "Ed25519VerificationKey2020"
	signatureType       = "Ed25519Signature2020"
	mockSignatureValue  = "eyJhbGciOiJFZERTQSIsImtpZCI6IiNrZXlzLTEifQ"

	authenticationKey  = "keys-1"
	assertionMethodKey = "keys-2"
)

// SyntheticResolver fabricates a deterministic document for any DID. Keys are
// derived from the DID string itself; they are not backed by any registry or
// real key material.
type SyntheticResolver struct {
	serviceEndpoint string
	linkedDomain    string
}

func NewSyntheticResolver(cfg config.DID) *SyntheticResolver {
	return &SyntheticResolver{
		serviceEndpoint: cfg.ServiceEndpoint,
		linkedDomain:    cfg.LinkedDomain,
	}
}

func (s *SyntheticResolver) Resolve(ctx context.Context, id DID) (*Document, error) {
	now := models.FormatTime(requestcontext.Now(ctx))

	methods := make([]VerificationMethod, 0, 2)
	for _, fragment := range []string{authenticationKey, assertionMethodKey} {
		key, err := publicKeyMultibase(id.String(), fragment)
		if err != nil {
			return nil, err
		}
		methods = append(methods, VerificationMethod{
			ID:                 id.URL(fragment),
			Type:               verificationKeyType,
			Controller:         id.String(),
			PublicKeyMultibase: key,
		})
	}

	return &Document{
		Context:            ContextV1,
		ID:                 id.String(),
		Authentication:     []string{id.URL(authenticationKey)},
		AssertionMethod:    []string{id.URL(assertionMethodKey)},
		VerificationMethod: methods,
		Service: []ServiceEndpoint{
			{ID: id.URL("endpoint-1"), Type: "VerifiableCredentialService", ServiceEndpoint: s.serviceEndpoint},
			{ID: id.URL("endpoint-2"), Type: "LinkedDomains", ServiceEndpoint: s.linkedDomain},
		},
		Created: now,
		Updated: now,
		Proof: &Proof{
			Type:               signatureType,
			VerificationMethod: id.URL(authenticationKey),
			SignatureValue:     mockSignatureValue,
		},
	}, nil
}

// publicKeyMultibase derives an Ed25519 public key from the DID and key
// fragment and encodes it as multicodec-prefixed base58btc.
func publicKeyMultibase(did, fragment string) (string, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(did), nil, []byte(fragment)), seed); err != nil {
		return "", fmt.Errorf("derive key seed: %w", err)
	}
	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)

	size := varint.UvarintSize(multicodecEd25519PubKey)
	data := make([]byte, size+len(pub))
	n := varint.PutUvarint(data, multicodecEd25519PubKey)
	copy(data[n:], pub)

	return mb.Encode(mb.Base58BTC, data)
}
