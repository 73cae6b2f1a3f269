package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	authhandler "did-ecosystem/internal/auth/handler"
	authservice "did-ecosystem/internal/auth/service"
	"did-ecosystem/internal/did"
	didhandler "did-ecosystem/internal/did/handler"
	"did-ecosystem/internal/platform/config"
	"did-ecosystem/internal/platform/httpserver"
	"did-ecosystem/internal/platform/logger"
	"did-ecosystem/internal/platform/metrics"
	"did-ecosystem/internal/secrets"
	httptransport "did-ecosystem/internal/transport/http"
	vchandler "did-ecosystem/internal/vc/handler"
	vcservice "did-ecosystem/internal/vc/service"
	"did-ecosystem/internal/vc/signing"
	"did-ecosystem/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	provider, err := signing.NewProvider(cfg.Signing)
	if err != nil {
		log.Error("failed to build signature provider", "error", err)
		os.Exit(1)
	}

	backend, err := secrets.NewStore(cfg.Vault, cfg.Redis)
	if err != nil {
		log.Error("failed to build secret store", "error", err)
		os.Exit(1)
	}
	breaker := circuit.New("secret-store", circuit.WithFailureThreshold(cfg.Vault.BreakerFailures), circuit.WithSuccessThreshold(1))
	store := secrets.NewBreakerStore(backend, breaker, cfg.Vault.BreakerCooldown, log)
	defer store.Close()
	fetcher := secrets.NewFetcher(store, cfg.Vault.FetchTimeout, secrets.WithMetrics(m), secrets.WithLogger(log))

	authCfg := authservice.DefaultConfig()
	authCfg.SecretName = cfg.Vault.SecretName
	authSvc := authservice.New(authCfg, fetcher, provider, authservice.WithMetrics(m), authservice.WithLogger(log))
	vcSvc := vcservice.New(provider, vcservice.WithMetrics(m), vcservice.WithLogger(log))
	resolver := did.NewResolver(did.NewSyntheticResolver(cfg.DID), did.WithMetrics(m), did.WithLogger(log))

	router := httptransport.NewRouter(
		httptransport.Deps{Logger: log, Metrics: m, Gatherer: registry},
		authhandler.New(authSvc, log),
		vchandler.New(vcSvc, log),
		didhandler.New(resolver, log),
	)

	srv := httpserver.New(cfg.Server.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting did-ecosystem gateway", "addr", cfg.Server.Addr, "signature_provider", cfg.Signing.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
