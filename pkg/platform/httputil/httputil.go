// Package httputil holds the JSON plumbing shared by every HTTP handler:
// response encoding, the error envelope, body decoding and method guards.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dErrors "did-ecosystem/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the envelope written for every failed request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as application/json with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	WriteJSONAs(w, status, "application/json", v)
}

// WriteJSONAs writes v as JSON under an explicit content type, e.g.
// application/ld+json for DID documents.
func WriteJSONAs(w http.ResponseWriter, status int, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its status and envelope. Internal
// errors never expose their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	resp := ErrorResponse{Error: string(code)}
	var de *dErrors.Error
	if status != http.StatusInternalServerError && errors.As(err, &de) {
		resp.ErrorDescription = de.Message
	}
	WriteJSON(w, status, resp)
}

// DecodeJSON reads the request body into a T. An empty body decodes to the
// zero value so handlers report missing fields rather than a parse failure.
func DecodeJSON[T any](r *http.Request) (*T, error) {
	var v T
	if r.Body == nil {
		return &v, nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return &v, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return &v, nil
}

// Method rejects requests whose verb differs from method with a 405 envelope.
func Method(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			WriteError(w, dErrors.New(dErrors.CodeMethodNotAllowed, "Method not allowed. Use "+method+"."))
			return
		}
		next(w, r)
	}
}
