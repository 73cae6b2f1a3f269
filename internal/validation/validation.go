// Package validation holds the structural checks shared by the issuer,
// verifier, resolver and authenticator. Every check returns nil or a coded
// domain error; none of them touch I/O.
package validation

import (
	"regexp"
	"strings"

	"did-ecosystem/internal/vc/models"
	dErrors "did-ecosystem/pkg/domain-errors"
)

const didPrefix = "did:"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email validates an optional email address. The empty string is valid.
func Email(s string) error {
	if s == "" {
		return nil
	}
	if !emailPattern.MatchString(s) {
		return dErrors.New(dErrors.CodeInvalidEmail, "Invalid email format")
	}
	return nil
}

// DID checks the did:<method>:<method-specific-id> shape.
func DID(s string) error {
	if s == "" {
		return dErrors.New(dErrors.CodeInvalidDID, "Missing required parameter: did")
	}
	if !strings.HasPrefix(s, didPrefix) {
		return dErrors.New(dErrors.CodeInvalidDID, "Invalid DID format. Must start with 'did:'")
	}
	if len(strings.Split(s, ":")) < 3 {
		return dErrors.New(dErrors.CodeInvalidDID, "Invalid DID format. Expected format: did:method:identifier")
	}
	return nil
}

// Credential requires type, issuer and credentialSubject to be present. An
// explicitly empty type list or subject object counts as present.
func Credential(c *models.VerifiableCredential) error {
	if c == nil || c.Type == nil || c.Issuer == "" || c.CredentialSubject == nil {
		return dErrors.New(dErrors.CodeIncompleteCredential, "Invalid credential format. Missing required fields.")
	}
	return nil
}
