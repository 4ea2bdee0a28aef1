package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"exptrack/internal/alert"
	"exptrack/internal/auth"
	"exptrack/internal/budget"
	"exptrack/internal/category"
	"exptrack/internal/expense"
	jwttoken "exptrack/internal/jwt_token"
	"exptrack/internal/notification"
	"exptrack/internal/platform/config"
	"exptrack/internal/platform/httpserver"
	"exptrack/internal/platform/logger"
	"exptrack/internal/platform/metrics"
	"exptrack/internal/platform/postgres"
	httptransport "exptrack/internal/transport/http"
	"exptrack/internal/user"

	"github.com/prometheus/client_golang/prometheus"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	m := metrics.New(prometheus.DefaultRegisterer)

	users := user.NewPostgres(db)
	budgets := budget.NewPostgres(db)
	expenses := expense.NewPostgres(db)
	categories := category.NewPostgres(db)
	notifications := notification.NewPostgres(db)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, "exptrack", cfg.TokenValidity)
	authService := auth.NewService(users, tokens)

	engine := alert.NewEngine(alert.Config{
		Workers:   cfg.AlertWorkers,
		QueueSize: cfg.AlertQueueSize,
	}, budgets, expenses, notifications, log, m)
	engine.Start()

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:          authService,
		Validator:     tokens,
		Users:         users,
		Budgets:       budgets,
		Expenses:      expenses,
		Categories:    categories,
		Notifications: notifications,
		Alerts:        engine,
		Metrics:       m,
		Logger:        log,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting exptrack", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	// Drain in-flight alert evaluations after the listener stops.
	engine.Stop()
}
