package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. All methods are safe
// to call on a nil receiver so components can run without instrumentation.
type Metrics struct {
	RequestDuration   *prometheus.HistogramVec
	CredentialsIssued prometheus.Counter
	Verifications     *prometheus.CounterVec
	DIDResolutions    *prometheus.CounterVec
	AuthAttempts      *prometheus.CounterVec
	SecretFallbacks   prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "did_gateway_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route, method and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method", "status"}),

		CredentialsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "did_gateway_credentials_issued_total",
			Help: "Total number of verifiable credentials issued",
		}),

		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "did_gateway_credential_verifications_total",
			Help: "Credential verifications by outcome",
		}, []string{"outcome"}), // outcome: "valid", "malformed", "invalid_signature", "expired"

		DIDResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "did_gateway_did_resolutions_total",
			Help: "Successful DID resolutions by DID method",
		}, []string{"method"}),

		AuthAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "did_gateway_auth_attempts_total",
			Help: "Authentication attempts by outcome",
		}, []string{"outcome"}),

		SecretFallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "did_gateway_secret_fallbacks_total",
			Help: "Secret store fetches that fell back to the placeholder value",
		}),
	}
}

// ObserveRequest records the duration of a served HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// IncrementCredentialsIssued increments the issued credentials counter by 1.
func (m *Metrics) IncrementCredentialsIssued() {
	if m != nil {
		m.CredentialsIssued.Inc()
	}
}

// IncrementVerification records a verification outcome.
func (m *Metrics) IncrementVerification(outcome string) {
	if m != nil {
		m.Verifications.WithLabelValues(outcome).Inc()
	}
}

// IncrementDIDResolution records a resolution for the given DID method.
func (m *Metrics) IncrementDIDResolution(method string) {
	if m != nil {
		m.DIDResolutions.WithLabelValues(method).Inc()
	}
}

// IncrementAuthAttempt records an authentication outcome.
func (m *Metrics) IncrementAuthAttempt(outcome string) {
	if m != nil {
		m.AuthAttempts.WithLabelValues(outcome).Inc()
	}
}

// IncrementSecretFallback records a degraded secret fetch.
func (m *Metrics) IncrementSecretFallback() {
	if m != nil {
		m.SecretFallbacks.Inc()
	}
}
