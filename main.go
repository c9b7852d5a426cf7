package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jub0bs/fcors"

	"tolet/config"
	"tolet/routes"
	"tolet/services"
	"tolet/session"
	"tolet/storage"
	"tolet/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== TO-LET server starting ===")
	logger.Info("Config — storage: %s | insight: %v | listen: %s",
		cfg.Mode(), cfg.InsightEnabled(), cfg.ListenAddr)

	store, err := storage.Open(cfg, logger.Component("storage"))
	if err != nil {
		logger.Error("Failed to open %s storage: %v", cfg.Mode(), err)
		os.Exit(1)
	}
	defer store.Close()

	sessions := session.NewManager(store,
		time.Duration(cfg.SessionTTLHours)*time.Hour, logger.Component("session"))
	defer sessions.Close()

	// Log auth changes; also demonstrates the unsubscribe contract.
	events, unsubscribe := sessions.Subscribe()
	defer unsubscribe()
	go func() {
		for ev := range events {
			switch ev.Kind {
			case session.SignedIn:
				logger.Info("user %s signed in", ev.UserID)
			case session.SignedOut:
				logger.Info("user %s signed out", ev.UserID)
			}
		}
	}()

	insight := services.NewInsightService(cfg.OpenAIKey, logger.Component("insight"))
	if !insight.Enabled() {
		logger.Warn("OPENAI_API_KEY not set — AI insights degraded to fixed fallback")
	}
	geocode := services.NewGeocodeService(cfg.NominatimURL, logger.Component("geocode"))
	defer geocode.Close()
	stats := services.NewStatsService(logger.Component("stats"))

	handlers := routes.NewHandlers(store, sessions, insight, geocode, stats, logger.Component("http"))
	defer handlers.Close()
	router := routes.NewRouter(handlers)

	cors, err := fcors.AllowAccess(
		fcors.FromAnyOrigin(),
		fcors.WithMethods(
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		),
		fcors.WithRequestHeaders("Authorization", "Content-Type", "X-Nav-Token"),
	)
	if err != nil {
		logger.Error("Failed to build CORS middleware: %v", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: cors(router),
	}

	go func() {
		logger.Info("Listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
	}()

	// listen for ctrl+c signal from terminal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error: %v", err)
	}
}
