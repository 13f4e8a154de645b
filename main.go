package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cadastralscraper/browser"
	"cadastralscraper/config"
	"cadastralscraper/extract"
	"cadastralscraper/fetcher"
	"cadastralscraper/lookup"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	pageFetcher := newFetcher(cfg)
	defer pageFetcher.Close()

	service := lookup.NewService(pageFetcher, extract.DefaultChain(cfg.EnableKnownFallback))
	handler := lookup.NewHandler(service)

	router := mux.NewRouter()
	router.HandleFunc("/lookup", handler.Lookup).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/", handler.Root).Methods("GET")

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handlers.CORS(
			handlers.AllowedMethods([]string{"GET"}),
			handlers.AllowedOrigins([]string{"*"}),
		)(handlers.LoggingHandler(os.Stdout, router)),
	}

	go func() {
		slog.Info("server listening",
			slog.String("port", cfg.Port),
			slog.String("fetch_mode", cfg.FetchMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("server shutdown incomplete", slog.String("error", err.Error()))
	}
}

// newFetcher selects the page-fetch strategy for the deployment environment.
func newFetcher(cfg *config.Config) fetcher.Fetcher {
	if cfg.FetchMode == config.ModeHTTP {
		return fetcher.NewHTTPFetcher(cfg.BaseURL)
	}
	return fetcher.NewBrowserFetcher(browser.Default, cfg.BaseURL, cfg.NavTimeout)
}

func setupLogger(level string) {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
}
