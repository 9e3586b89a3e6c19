package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/browsersession/pkg/hostguard"
	"github.com/dmitrymomot/browsersession/pkg/httpserver"
	"github.com/dmitrymomot/browsersession/pkg/logger"
	"github.com/dmitrymomot/browsersession/pkg/requestid"
	"github.com/dmitrymomot/browsersession/pkg/session"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	var (
		addr         string
		allowedHosts []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo server backed by cookie sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			router, err := newRouter(cfg.Session, log, reg, otel.GetTracerProvider(), allowedHosts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().StringSliceVar(&allowedHosts, "allowed-host", nil, "accept only these Host headers")
	return cmd
}

// newRouter wires the demo endpoints. Every request runs in a span from tp,
// and host validation runs before the session is loaded.
func newRouter(cfg session.Config, log *slog.Logger, reg *prometheus.Registry, tp trace.TracerProvider, allowedHosts ...string) (http.Handler, error) {
	mgr, err := session.NewFromConfig(cfg,
		session.WithLogger(log),
		session.WithMetrics(reg),
	)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(traceRequests(tp))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return mgr.Protect(next, hostguard.WithAllowedHosts(allowedHosts...))
		})

		r.Get("/", showSession)
		r.Post("/visit", countVisit(log))
		r.Post("/login", login(log))
		r.Post("/logout", logout(log))
	})

	return r, nil
}

// traceRequests starts a server span per request. Session load and save
// events are recorded on it by the session middleware.
func traceRequests(tp trace.TracerProvider) func(http.Handler) http.Handler {
	tracer := tp.Tracer(serviceName)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
					attribute.String("request.id", requestid.FromContext(r.Context())),
				),
			)
			defer span.End()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

func showSession(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"null":      sess.IsNull(),
		"permanent": sess.Permanent(),
		"data":      sess.Values(),
	})
}

func countVisit(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.MustFromContext(r.Context())
		n, _ := sess.GetInt("visits")
		if err := sess.Set("visits", n+1); err != nil {
			sessionError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"visits": n + 1})
	}
}

func login(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := r.FormValue("user")
		if user == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "user is required"})
			return
		}

		sess := session.MustFromContext(r.Context())
		err := sess.Update(map[string]any{"user": user})
		if err == nil && r.FormValue("remember") != "" {
			err = sess.SetPermanent(true)
		}
		if err != nil {
			sessionError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	}
}

func logout(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := session.MustFromContext(r.Context()).Clear(); err != nil {
			sessionError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func sessionError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, session.ErrSessionUnavailable) {
		status = http.StatusServiceUnavailable
	}
	log.ErrorContext(r.Context(), "session update failed", logger.Component("demo"), logger.Error(err))
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

