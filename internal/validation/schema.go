package validation

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	dErrors "did-ecosystem/pkg/domain-errors"
)

// credentialSchema gates raw credential documents before they are decoded.
// It only pins the members verification depends on; @context, jwt, proof
// and the dates are left to the decoder and the verifier.
const credentialSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["type", "issuer", "credentialSubject"],
  "properties": {
    "issuer": {"type": "string", "minLength": 1},
    "credentialSubject": {"type": "object"}
  }
}`

var credentialSchemaLoader = gojsonschema.NewStringLoader(credentialSchema)

// CredentialDocument validates a raw JSON credential against the structural
// schema. Only the first violation is reported.
func CredentialDocument(raw []byte) error {
	result, err := gojsonschema.Validate(credentialSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeIncompleteCredential, "Invalid credential format. Credential is not a JSON object.")
	}
	if result.Valid() {
		return nil
	}
	first := result.Errors()[0]
	field := first.Field()
	if field == "(root)" {
		field = strings.TrimSpace(first.Description())
	}
	return dErrors.New(dErrors.CodeIncompleteCredential, "Invalid credential format. Missing required fields. ("+field+")")
}
