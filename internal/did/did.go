// Package did parses decentralized identifiers and resolves them into DID
// documents through method-keyed resolution strategies.
package did

import (
	"strings"

	"did-ecosystem/internal/validation"
)

// DID is a parsed did:<method>:<method-specific-id>.
type DID struct {
	Method     string
	Identifier string
	raw        string
}

// Parse validates s and splits it into method and identifier. The identifier
// keeps any further colons.
func Parse(s string) (DID, error) {
	if err := validation.DID(s); err != nil {
		return DID{}, err
	}
	parts := strings.Split(s, ":")
	return DID{
		Method:     parts[1],
		Identifier: strings.Join(parts[2:], ":"),
		raw:        s,
	}, nil
}

func (d DID) String() string {
	return d.raw
}

// URL returns the DID URL for a fragment, e.g. did:example:123#keys-1.
func (d DID) URL(fragment string) string {
	return d.raw + "#" + fragment
}
