// main is the entry point of the registrations API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus .env / environment)
//  2. Initialise the logger
//  3. Initialise the CSV-backed record store
//  4. Pick the notifier: real SMTP mailer, or log-only when disabled
//  5. Register the two HTTP routes and wrap them in CORS middleware
//  6. Start the HTTP server in a separate goroutine
//  7. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/registrations-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/registrations-api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/coursedesk/registrations-api/internal/config"
	"github.com/coursedesk/registrations-api/internal/http/handlers/dashboard"
	"github.com/coursedesk/registrations-api/internal/http/handlers/registration"
	"github.com/coursedesk/registrations-api/internal/notify"
	"github.com/coursedesk/registrations-api/internal/notify/smtp"
	"github.com/coursedesk/registrations-api/internal/storage/csvfile"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the YAML config and fatals if anything is wrong.
	// The name "Must" signals: if this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger (stdlib since Go 1.21). Structured
	// logs are key=value pairs, easy to filter in tools like Loki.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting registrations-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// csvfile.New only records the path; the CSV file itself appears,
	// header first, on the first registration.
	store := csvfile.New(cfg)

	log.Info("storage initialised", slog.String("path", cfg.StoragePath))

	// ── 4. Pick the Notifier ──────────────────────────────────────────────
	// Both branches satisfy the notify.Notifier interface, so handlers
	// never know whether mail is live. With mail disabled (the
	// default), notifications go to the log — handy for local runs
	// where no SMTP credentials exist.
	var notifier notify.Notifier
	if cfg.Mail.Enabled {
		notifier = smtp.New(cfg, log)
		log.Info("smtp notifier enabled",
			slog.String("host", cfg.Mail.Host),
			slog.String("recipient", cfg.Mail.Recipient),
		)
	} else {
		notifier = notify.Discard{Log: log}
		log.Info("mail disabled, notifications will be logged only")
	}

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	// The handler functions (registration.New, dashboard.New) are
	// FACTORIES — they receive dependencies and return the actual
	// handler. This is the dependency injection / closure pattern.
	//
	// Route table:
	//   POST /register   → accept a registration, store it, notify admin
	//   GET  /dashboard  → HTML report: count, chart, full table
	router := http.NewServeMux()

	router.HandleFunc("POST /register", registration.New(store, notifier))
	router.HandleFunc("GET /dashboard", dashboard.New(store))

	// The registration form is served from elsewhere (a static page),
	// so browsers hit /register cross-origin. cors.Default() allows
	// simple GET/POST requests from any origin, matching that setup.
	handler := cors.Default().Handler(router)

	// ── 6. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr, // e.g. "localhost:8082"
		Handler: handler,             // every request goes through CORS → router

		// Production hardening — timeouts prevent slow-client attacks.
		// WriteTimeout also bounds the synchronous SMTP send inside the
		// intake request, so the mail timeout must fit inside it.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 7. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks forever. If we called it here in main(),
	// the graceful-shutdown code below would never run.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown()
		// is called. That's expected — not an error worth logging.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 8. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered channel of size 1 so we don't miss the signal if main is
	// briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	// 5-second deadline for in-flight requests to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo, // INFO and above in production
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // more verbose in staging
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug, // all levels in development
			}),
		)
	}
}
