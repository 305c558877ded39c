package main

import (
	"context"
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/khaohom/savings/internal/config"
	"github.com/khaohom/savings/internal/db"
	"github.com/khaohom/savings/internal/handlers"
	"github.com/khaohom/savings/internal/logger"
	"github.com/khaohom/savings/internal/middleware"
	"github.com/khaohom/savings/internal/repositories"
	"github.com/khaohom/savings/internal/services"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		stdlog.Fatal("Failed to initialize logger:", err)
	}
	defer log.Sync()

	cfg := config.New()
	if cfg.SyncSecret == "" {
		log.Warn("SYNC_PASSWORD is not set; all sync calls will be rejected")
	}

	// Database connection
	database, err := db.Connect(db.NewConfig())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		log.Fatal("Database health check failed", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}
	log.Info("Database connection established")

	// Dependency-injected clients: no process-wide singletons
	repo := repositories.NewLedgerRepository(database)
	rateProvider := services.NewHTTPRateProvider(cfg.RateAPIBaseURL, cfg.FallbackTHBRate)
	priceProvider := services.NewCoinGeckoPriceProvider(cfg.PriceAPIBaseURL)
	quotes := services.NewQuoteService(rateProvider, priceProvider, cfg.QuoteTTL)

	syncService := services.NewSyncService(repo, cfg.SyncSecret, log)
	portfolioService := services.NewPortfolioService(repo, quotes)

	ledgerHandler := handlers.NewLedgerHandler(portfolioService, log)
	fxHandler := handlers.NewFXHandler(portfolioService)
	syncHandler := handlers.NewSyncHandler(syncService, log)
	reportingHandler := handlers.NewReportingHandler(portfolioService, log)

	readLimiter := middleware.NewClientLimiter(cfg.ReadRatePerMinute, "Too many requests, please try again later.")
	syncLimiter := middleware.NewClientLimiter(cfg.SyncRatePerMinute, "Too many sync requests, please try again later.")

	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Handle("/assets", readLimiter.Wrap(http.HandlerFunc(ledgerHandler.HandleAssets))).Methods("GET")
	api.Handle("/payments", readLimiter.Wrap(http.HandlerFunc(ledgerHandler.HandlePayments))).Methods("GET")
	api.Handle("/current-exchange-rate", readLimiter.Wrap(http.HandlerFunc(fxHandler.HandleCurrentRate))).Methods("GET")
	api.Handle("/sync-payments", syncLimiter.Wrap(http.HandlerFunc(syncHandler.HandleSync))).Methods("POST")

	api.Handle("/reports/holdings", readLimiter.Wrap(http.HandlerFunc(reportingHandler.HandleHoldings))).Methods("GET")
	api.Handle("/reports/summary", readLimiter.Wrap(http.HandlerFunc(reportingHandler.HandleSummary))).Methods("GET")
	api.Handle("/reports/chart", readLimiter.Wrap(http.HandlerFunc(reportingHandler.HandleChart))).Methods("GET")
	api.Handle("/reports/projections", readLimiter.Wrap(http.HandlerFunc(reportingHandler.HandleProjections))).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(handlers.NotFound)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.CORS(cfg.AllowedOrigin)(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received, closing HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
