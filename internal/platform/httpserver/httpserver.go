// Package httpserver builds the http.Server that fronts the credential
// gateway's issue, verify and authenticate routes.
package httpserver

import (
	"net/http"
	"time"
)

// New returns the gateway's server bound to addr. Requests are small JSON
// documents, so headers must arrive within 5s and a whole exchange within 15s
// each way; the write budget also covers a slow secret store fetch during
// authentication. Idle keep-alive connections are dropped after a minute.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
