package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"did-ecosystem/internal/did"
	"did-ecosystem/internal/platform/config"
	"did-ecosystem/pkg/requestcontext"
	"did-ecosystem/pkg/testutil"
)

func newRouter() http.Handler {
	resolver := did.NewResolver(did.NewSyntheticResolver(config.DID{
		ServiceEndpoint: "https://vc.example.com",
		LinkedDomain:    "https://example.com",
	}))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestcontext.WithTime(req.Context(), time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	New(resolver, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func TestResolveDID(t *testing.T) {
	router := newRouter()

	testutil.Given(t, "a DID in the path", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/resolve-did/did:example:123", nil))

		testutil.Then(t, "the document is returned as JSON-LD", func(t *testing.T) {
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/ld+json", rr.Header().Get("Content-Type"))

			resp := testutil.UnmarshalResponse[ResolveResponse](t, rr)
			assert.True(t, resp.Success)
			assert.Equal(t, "DID resolved successfully", resp.Message)
			require.NotNil(t, resp.DIDDocument)
			assert.Equal(t, "did:example:123", resp.DIDDocument.ID)
			assert.Equal(t, "2025-01-02T03:04:05.000Z", resp.DIDDocument.Created)
		})
	})

	testutil.Given(t, "a percent-encoded DID in the path", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/resolve-did/did%3Aexample%3A123", nil))

		testutil.Then(t, "it is decoded before resolution", func(t *testing.T) {
			require.Equal(t, http.StatusOK, rr.Code)
			resp := testutil.UnmarshalResponse[ResolveResponse](t, rr)
			assert.Equal(t, "did:example:123", resp.DIDDocument.ID)
		})
	})

	testutil.Given(t, "a DID in the query string", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/resolve-did?did=did:web:example.com", nil))

		testutil.Then(t, "it is resolved", func(t *testing.T) {
			require.Equal(t, http.StatusOK, rr.Code)
			resp := testutil.UnmarshalResponse[ResolveResponse](t, rr)
			assert.Equal(t, "did:web:example.com", resp.DIDDocument.ID)
		})
	})

	testutil.Given(t, "no DID at all", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/resolve-did", nil))

		testutil.Then(t, "invalid_did is returned", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_did")
		})
	})

	testutil.Given(t, "a malformed DID", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/resolve-did/example:123", nil))

		testutil.Then(t, "invalid_did is returned", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_did")
		})
	})

	testutil.Given(t, "a POST request", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/resolve-did/did:example:123", nil))

		testutil.Then(t, "the method is rejected", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusMethodNotAllowed, "method_not_allowed")
			assert.Equal(t, http.MethodGet, rr.Header().Get("Allow"))
		})
	})
}

var _ Resolver = (*did.Resolver)(nil)
