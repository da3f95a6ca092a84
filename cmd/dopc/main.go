package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dopc/internal/config"
	"dopc/internal/handler"
	"dopc/internal/homeapi"
	"dopc/internal/logger"
	"dopc/internal/service"
	redisstore "dopc/internal/storage/redis"
)

var envFile = flag.String("env", ".env", "path of the .env configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	var venues homeapi.Client = homeapi.New(cfg.HomeAPIBase, httpClient)

	if cfg.CacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		rdb, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			appLogger.Fatal("cannot connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		venues = homeapi.NewCachedClient(venues, redisstore.NewVenueCache(rdb), cfg.VenueCacheTTL, appLogger)
		appLogger.Info("venue cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.VenueCacheTTL))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := handler.NewMetrics(reg)

	quotes := service.NewQuoteService(venues, cfg.FeeDivisor, appLogger)
	priceHandler := handler.NewPriceHandler(quotes, cfg.UpstreamTimeout, appLogger, m)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(handler.PromeHttpMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "UP", "env": cfg.Env})
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	handler.PriceRouter(r, priceHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.Info("DOPC listening", zap.String("port", cfg.ServerPort), zap.Int("fee_divisor", cfg.FeeDivisor))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("server forced to shutdown", zap.Error(err))
	}
}
