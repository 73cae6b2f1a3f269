package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"did-ecosystem/internal/auth/service"
	"did-ecosystem/pkg/platform/httputil"
	"did-ecosystem/pkg/requestcontext"
)

// Service authenticates a login attempt and returns the login credential.
type Service interface {
	Login(ctx context.Context, creds service.Credentials) (*service.AuthResult, error)
}

// Handler serves the authenticate endpoint.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.HandleFunc("/api/authenticate", httputil.Method(http.MethodPost, h.handleAuthenticate))
}

func (h *Handler) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	h.logger.InfoContext(ctx, "authentication triggered", "request_id", requestID)

	creds, err := httputil.DecodeJSON[service.Credentials](r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid authenticate request", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Login(ctx, *creds)
	if err != nil {
		h.logger.WarnContext(ctx, "authentication failed",
			"request_id", requestID,
			"username", creds.Username,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
