package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesAcceptsStringOrArray(t *testing.T) {
	var single VerifiableCredential
	require.NoError(t, json.Unmarshal([]byte(`{"type":"VerifiableCredential"}`), &single))
	assert.Equal(t, Types{"VerifiableCredential"}, single.Type)

	var many VerifiableCredential
	require.NoError(t, json.Unmarshal([]byte(`{"type":["VerifiableCredential","AlumniCredential"]}`), &many))
	assert.Equal(t, Types{"VerifiableCredential", "AlumniCredential"}, many.Type)

	var bad VerifiableCredential
	require.Error(t, json.Unmarshal([]byte(`{"type":42}`), &bad))

	var empty VerifiableCredential
	require.NoError(t, json.Unmarshal([]byte(`{"type":[]}`), &empty))
	assert.NotNil(t, empty.Type)
	assert.Empty(t, empty.Type)

	for _, absent := range []string{`{}`, `{"type":null}`, `{"type":""}`} {
		var c VerifiableCredential
		require.NoError(t, json.Unmarshal([]byte(absent), &c))
		assert.Nil(t, c.Type, absent)
	}
}

func TestHasJWT(t *testing.T) {
	cases := map[string]bool{
		`{}`:                false,
		`{"jwt":null}`:      false,
		`{"jwt":""}`:        true,
		`{"jwt":"a.b.c"}`:   true,
		`{"jwt":{"k":"v"}}`: true,
	}
	for doc, want := range cases {
		var c VerifiableCredential
		require.NoError(t, json.Unmarshal([]byte(doc), &c))
		assert.Equal(t, want, c.HasJWT(), doc)
	}

	var c VerifiableCredential
	require.NoError(t, json.Unmarshal([]byte(`{"jwt":"a.b.c"}`), &c))
	assert.Equal(t, Token("a.b.c"), c.JWT)

	assert.True(t, (&VerifiableCredential{JWT: "a.b.c"}).HasJWT())
	assert.False(t, (&VerifiableCredential{}).HasJWT())
}

func TestEncodingKeepsEmptyMembers(t *testing.T) {
	b, err := json.Marshal(VerifiableCredential{
		Type:              Types{},
		Issuer:            "did:example:issuer",
		CredentialSubject: Subject{},
		Claims:            Claims{},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":[],"issuer":"did:example:issuer","credentialSubject":{},"claims":{}}`, string(b))

	b, err = json.Marshal(VerifiableCredential{Issuer: "did:example:issuer"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"issuer":"did:example:issuer"}`, string(b))
}

func TestContextIsKeptVerbatim(t *testing.T) {
	var c VerifiableCredential
	require.NoError(t, json.Unmarshal([]byte(`{"@context":"https://www.w3.org/2018/credentials/v1"}`), &c))
	assert.JSONEq(t, `"https://www.w3.org/2018/credentials/v1"`, string(c.Context))
	assert.JSONEq(t, `["https://www.w3.org/2018/credentials/v1"]`, string(NewContext(ContextV1)))
}

func TestHasProof(t *testing.T) {
	var c VerifiableCredential
	require.NoError(t, json.Unmarshal([]byte(`{"proof":null}`), &c))
	assert.False(t, c.HasProof())

	require.NoError(t, json.Unmarshal([]byte(`{"proof":{"type":"Ed25519Signature2020"}}`), &c))
	assert.True(t, c.HasProof())
}

func TestTimeRoundTrip(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	s := FormatTime(ts)
	assert.Equal(t, "2025-01-02T03:04:05.678Z", s)

	parsed, err := ParseTime(s)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	day, err := ParseTime("2030-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2030, day.Year())

	_, err = ParseTime("next tuesday")
	require.Error(t, err)
}
