package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"did-ecosystem/internal/did"
	"did-ecosystem/pkg/platform/httputil"
	"did-ecosystem/pkg/requestcontext"
)

const contentTypeLDJSON = "application/ld+json"

// Resolver resolves a DID string into its document.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (*did.Document, error)
}

// Handler serves DID resolution.
type Handler struct {
	resolver Resolver
	logger   *slog.Logger
}

// ResolveResponse is the envelope returned on successful resolution.
type ResolveResponse struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	DIDDocument *did.Document `json:"didDocument"`
}

func New(resolver Resolver, logger *slog.Logger) *Handler {
	return &Handler{resolver: resolver, logger: logger}
}

// Register mounts GET /api/resolve-did and /api/resolve-did/{did}.
func (h *Handler) Register(r chi.Router) {
	r.HandleFunc("/api/resolve-did", httputil.Method(http.MethodGet, h.handleResolve))
	r.HandleFunc("/api/resolve-did/{did}", httputil.Method(http.MethodGet, h.handleResolve))
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	raw := didParam(r)
	h.logger.InfoContext(ctx, "DID resolution triggered", "request_id", requestID, "did", raw)

	doc, err := h.resolver.Resolve(ctx, raw)
	if err != nil {
		h.logger.WarnContext(ctx, "DID resolution failed",
			"request_id", requestID,
			"did", raw,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "DID resolved", "request_id", requestID, "did", doc.ID)
	httputil.WriteJSONAs(w, http.StatusOK, contentTypeLDJSON, ResolveResponse{
		Success:     true,
		Message:     "DID resolved successfully",
		DIDDocument: doc,
	})
}

// didParam prefers the path segment over the did query parameter. Encoded
// path values such as did%3Aexample%3A123 are unescaped.
func didParam(r *http.Request) string {
	raw := chi.URLParam(r, "did")
	if raw == "" {
		return r.URL.Query().Get("did")
	}
	if !strings.HasPrefix(raw, "did:") {
		if decoded, err := url.PathUnescape(raw); err == nil {
			return decoded
		}
	}
	return raw
}
