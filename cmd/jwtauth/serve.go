package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/signedtoken/jwtauth"
	"github.com/signedtoken/jwtauth/config"
	"github.com/signedtoken/jwtauth/token"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, settings config.Settings, stderr io.Writer) int {
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(settings.LogLevel)
	if err != nil {
		log.WithError(err).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router, err := newRouter(settings, log, registry)
	if err != nil {
		log.WithError(err).Error("failed to build router")
		return 1
	}

	server := &http.Server{
		Addr:              settings.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", settings.HTTPAddr).Info("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server failed")
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown failed")
			return 1
		}
		log.Info("server stopped")
	}
	return 0
}

// newRouter wires the public and protected routes.
func newRouter(settings config.Settings, log logrus.FieldLogger, registry *prometheus.Registry) (http.Handler, error) {
	cfg, err := settings.TokenConfig()
	if err != nil {
		return nil, err
	}
	verifier, err := token.NewVerifier(cfg)
	if err != nil {
		return nil, err
	}

	metrics, err := jwtauth.NewPrometheusMetrics(registry)
	if err != nil {
		return nil, err
	}

	auth, err := jwtauth.New(
		jwtauth.WithVerifier(verifier),
		jwtauth.WithScheme(settings.Scheme),
		jwtauth.WithLogger(jwtauth.NewLogrusLogger(log)),
		jwtauth.WithMetrics(metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("build middleware: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(auth.CheckJWT)
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"identity": jwtauth.MustGetIdentity(r.Context())})
		})
	})

	return r, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
