package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayioka/momo-analysis/internal/config"
	"github.com/ayioka/momo-analysis/internal/db"
	"github.com/ayioka/momo-analysis/internal/ingestion"
	"github.com/ayioka/momo-analysis/internal/logger"
	"github.com/ayioka/momo-analysis/internal/middleware"
	"github.com/ayioka/momo-analysis/internal/repository"

	"github.com/alecthomas/kong"
	"github.com/rs/cors"
)

var cli struct {
	Config     string `help:"Directory containing config.yaml." default:"."`
	Migrations string `help:"Directory containing SQL migrations." default:"./migrations"`
	Addr       string `help:"Listen address, overrides configuration." default:""`
}

func main() {
	kong.Parse(&cli)
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(cli.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cli.Addr != "" {
		cfg.Addr = cli.Addr
	}

	conn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.DB.URL(), cli.Migrations); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	transactionRepo := repository.NewTransactionRepository(conn.Pool)
	processingLogRepo := repository.NewProcessingLogRepository(conn.Pool)

	service := ingestion.NewService(transactionRepo, processingLogRepo, log)
	handler := ingestion.NewHTTPHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/upload", handler.Upload)
	mux.HandleFunc("/stats", handler.Stats)
	mux.HandleFunc("/logs", handler.Logs)
	mux.HandleFunc("/transactions", handler.Transactions)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      corsHandler.Handler(middleware.Logging(log)(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting ingestion server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
