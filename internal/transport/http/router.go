package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"did-ecosystem/internal/platform/metrics"
	"did-ecosystem/internal/platform/middleware"
	"did-ecosystem/pkg/platform/httputil"
	"did-ecosystem/pkg/platform/middleware/requesttime"
)

// Registrar mounts a feature's routes on the shared router.
type Registrar interface {
	Register(r chi.Router)
}

// Deps holds what the router needs beyond the feature handlers.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter wires the middleware chain, the operational endpoints and every
// feature handler. Handlers delegate to services and carry no business logic.
func NewRouter(deps Deps, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(middleware.AccessLog(deps.Logger, deps.Metrics))
	r.Use(middleware.Recover(deps.Logger))

	r.HandleFunc("/healthz", httputil.Method(http.MethodGet, handleHealth))
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
