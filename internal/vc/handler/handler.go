package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"did-ecosystem/internal/validation"
	"did-ecosystem/internal/vc/models"
	"did-ecosystem/internal/vc/service"
	dErrors "did-ecosystem/pkg/domain-errors"
	"did-ecosystem/pkg/platform/httputil"
	"did-ecosystem/pkg/requestcontext"
)

// Service defines the credential operations exposed over HTTP.
type Service interface {
	Issue(ctx context.Context, req service.IssueRequest) (*models.VerifiableCredential, error)
	Verify(ctx context.Context, cred *models.VerifiableCredential) (*models.VerificationReport, error)
}

// Handler handles credential issuance and verification endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

type IssueResponse struct {
	Success    bool                         `json:"success"`
	Message    string                       `json:"message"`
	Credential *models.VerifiableCredential `json:"credential"`
}

type VerifyRequest struct {
	Credential json.RawMessage `json:"credential"`
}

type VerifyResponse struct {
	Success      bool                       `json:"success"`
	Message      string                     `json:"message"`
	Verification *models.VerificationReport `json:"verification"`
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the credential routes on r.
func (h *Handler) Register(r chi.Router) {
	r.HandleFunc("/api/issue-credential", httputil.Method(http.MethodPost, h.handleIssue))
	r.HandleFunc("/api/verify-credential", httputil.Method(http.MethodPost, h.handleVerify))
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	h.logger.InfoContext(ctx, "credential issuance triggered", "request_id", requestID)

	req, err := httputil.DecodeJSON[service.IssueRequest](r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid issue request", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	cred, err := h.service.Issue(ctx, *req)
	if err != nil {
		h.logFailure(ctx, "credential issuance failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, IssueResponse{
		Success:    true,
		Message:    "Credential issued successfully",
		Credential: cred,
	})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	h.logger.InfoContext(ctx, "credential verification triggered", "request_id", requestID)

	req, err := httputil.DecodeJSON[VerifyRequest](r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid verify request", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	cred, err := decodeCredential(req.Credential)
	if err != nil {
		h.logFailure(ctx, "credential rejected", err)
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.Verify(ctx, cred)
	if err != nil {
		h.logFailure(ctx, "credential verification failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, VerifyResponse{
		Success:      true,
		Message:      "Credential verified successfully",
		Verification: report,
	})
}

// decodeCredential runs the schema gate over the raw document before decoding
// it into the credential model.
func decodeCredential(raw json.RawMessage) (*models.VerifiableCredential, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, dErrors.New(dErrors.CodeMissingFields, "Missing required field: credential")
	}
	if err := validation.CredentialDocument(trimmed); err != nil {
		msg := "Invalid credential format"
		var de *dErrors.Error
		if errors.As(err, &de) {
			msg = de.Message
		}
		return nil, dErrors.Wrap(err, dErrors.CodeMalformed, msg)
	}
	var cred models.VerifiableCredential
	if err := json.Unmarshal(trimmed, &cred); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeMalformed, "Invalid credential format")
	}
	return &cred, nil
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	args := []any{"request_id", requestcontext.RequestID(ctx), "error", err}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
