package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birdai/internal/auth"
	"birdai/internal/cache"
	"birdai/internal/config"
	"birdai/internal/handler"
	"birdai/internal/insight"
	"birdai/internal/job"
	"birdai/internal/ledger"
	"birdai/internal/provider"
	"birdai/internal/service"
	"birdai/internal/store"
	"birdai/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "birdai/docs"
)

var (
	loadEnvFunc        = godotenv.Load
	loadConfigFunc     = config.Load
	initTracerFunc     = tracing.InitTracer
	initRedisFunc      = cache.New
	newAnalyticsFunc   = store.NewAnalyticsStore
	newEmailStoreFunc  = store.NewEmailStore
	newSchedulerFunc   = job.NewScheduler
	newHandlerFunc     = handler.New
	newRouterFunc      = gin.Default
	setupSignalNotify  = signal.Notify
	waitForSignalFunc  = func(quit <-chan os.Signal) { <-quit }
	startHTTPServer    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServer = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           BirdAI API
// @version         1.0
// @description     Market data, insight, and demo ledger backend for the BirdAI site.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	analytics, err := newAnalyticsFunc(cfg.SQLitePath, tracer)
	if err != nil {
		log.Fatalf("failed to open analytics store: %v", err)
	}
	defer analytics.Close()

	emails, err := newEmailStoreFunc(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open email store: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = initRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("redis unavailable, caching disabled: %v", err)
			redisClient = nil
		}
	}

	markets := provider.NewCoinGeckoProvider(tracer)
	chain := provider.NewSuiProvider(tracer, cfg.SuiRPCURL)
	sentiment := provider.NewSentimentFeed(tracer)

	insights := insight.NewService(tracer, markets, chain, sentiment, analytics)

	var marketSvc *service.MarketService
	if redisClient != nil {
		marketSvc = service.NewMarketService(tracer, markets, chain, redisClient)
	} else {
		marketSvc = service.NewMarketService(tracer, markets, chain, nil)
	}

	authenticator := auth.New(cfg.JWTSecret, cfg.AdminUsername, cfg.AdminPassword, cfg.DemoAccessCode)
	vault := ledger.New(cfg.LedgerOpeningReserve)

	scheduler := newSchedulerFunc(ctx, insights)
	if err := scheduler.RegisterAll(cfg.SnapshotCron, cfg.SentimentCron, cfg.InsightCron); err != nil {
		log.Fatalf("failed to register jobs: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	if cfg.CollectOnStart {
		go scheduler.RunStartupCollection()
	}

	h := newHandlerFunc(tracer, marketSvc, insights, emails, authenticator, vault)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("birdai"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := startHTTPServer(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServer(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
