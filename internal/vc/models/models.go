package models

import (
	"encoding/json"
	"errors"
	"time"
)

const (
	// ContextV1 is the W3C VC data model 1.1 JSON-LD context.
	ContextV1 = "https://www.w3.org/2018/credentials/v1"
	// TypeVerifiableCredential is the base type every credential carries.
	TypeVerifiableCredential = "VerifiableCredential"
	// NeverExpires is reported for credentials without an expirationDate.
	NeverExpires = "Never"
	// TimeLayout renders timestamps like JavaScript's toISOString.
	TimeLayout = "2006-01-02T15:04:05.000Z"
)

// Token is an opaque header.payload.signature bearer string.
type Token string

func (t Token) String() string { return string(t) }

// Subject is the caller-defined credentialSubject object.
type Subject map[string]any

// Claims is the caller-defined claims object.
type Claims map[string]any

// Types is the credential "type" member. It accepts a bare string or an array
// on input and always encodes as an array. An empty string or null decodes to
// nil (absent); an explicit [] decodes to a non-nil empty slice.
type Types []string

func (t *Types) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*t = nil
			return nil
		}
		*t = Types{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("type must be a string or an array of strings")
	}
	if many == nil {
		many = []string{}
	}
	*t = many
	return nil
}

// VerifiableCredential is the wire shape of a credential. Fields are kept
// loose so externally supplied credentials decode without loss and the
// validators decide what is acceptable. Empty subject, claims and type
// members survive encoding; only unset ones are left out.
type VerifiableCredential struct {
	Context           json.RawMessage `json:"@context,omitempty"`
	ID                string          `json:"id,omitempty"`
	Type              Types           `json:"type,omitzero"`
	Issuer            string          `json:"issuer,omitempty"`
	IssuanceDate      string          `json:"issuanceDate,omitempty"`
	ExpirationDate    string          `json:"expirationDate,omitempty"`
	CredentialSubject Subject         `json:"credentialSubject,omitzero"`
	Claims            Claims          `json:"claims,omitzero"`
	JWT               Token           `json:"jwt,omitempty"`
	Proof             json.RawMessage `json:"proof,omitempty"`

	jwtPresent bool
}

// UnmarshalJSON records whether a non-null jwt member was supplied, whatever
// its JSON type. Only string values are kept in JWT.
func (c *VerifiableCredential) UnmarshalJSON(data []byte) error {
	type plain VerifiableCredential
	aux := struct {
		*plain
		JWT json.RawMessage `json:"jwt"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.JWT = ""
	c.jwtPresent = len(aux.JWT) > 0 && string(aux.JWT) != "null"
	var token string
	if c.jwtPresent && json.Unmarshal(aux.JWT, &token) == nil {
		c.JWT = Token(token)
	}
	return nil
}

// HasJWT reports whether a non-null jwt member is present, including "".
func (c *VerifiableCredential) HasJWT() bool {
	return c.jwtPresent || c.JWT != ""
}

// HasProof reports whether a non-null proof member was supplied.
func (c *VerifiableCredential) HasProof() bool {
	return len(c.Proof) > 0 && string(c.Proof) != "null"
}

// NewContext encodes a list of JSON-LD context URLs.
func NewContext(urls ...string) json.RawMessage {
	b, _ := json.Marshal(urls)
	return b
}

// VerificationReport is returned for a credential that passed verification.
type VerificationReport struct {
	IsValid        bool    `json:"isValid"`
	Issuer         string  `json:"issuer"`
	IssuanceDate   string  `json:"issuanceDate,omitempty"`
	ExpirationDate string  `json:"expirationDate"`
	Subject        Subject `json:"subject"`
}

// FormatTime renders t in UTC with millisecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts RFC 3339 timestamps (with or without fractional seconds)
// and bare dates.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
