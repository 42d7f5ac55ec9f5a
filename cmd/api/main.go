package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cropwise/estimation-backend/internal/catalog"
	"cropwise/estimation-backend/internal/config"
	"cropwise/estimation-backend/internal/estimation"
	"cropwise/estimation-backend/internal/logging"
	"cropwise/estimation-backend/internal/planning"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ref, err := loadReference(cfg.Reference.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load reference data", zap.Error(err))
	}
	logger.Info("Reference data loaded",
		zap.String("path", cfg.Reference.CatalogPath),
		zap.Strings("crops", ref.Catalog.Names()),
	)

	engine := estimation.NewEngine(ref, estimation.WithJitter(jitterFor(cfg.Estimation, logger)))

	var cache *planning.RecommendationCache
	if cfg.Cache.TTL > 0 {
		cache = planning.NewRecommendationCache(cfg.Cache.TTL)
		defer cache.Stop()
	}

	planningService := planning.NewService(engine, cache, logger)
	planningHandler := planning.NewHandler(planningService, logger)

	if cfg.Logging.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), cors())

	api := router.Group("/api/v1")
	{
		planningHandler.RegisterRoutes(api)
	}

	router.GET("/health", func(c *gin.Context) {
		health := gin.H{
			"status":    "healthy",
			"crops":     ref.Catalog.Len(),
			"timestamp": time.Now(),
		}
		if cache != nil {
			health["cache"] = cache.Stats()
		}
		c.JSON(http.StatusOK, health)
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func loadReference(path string) (*catalog.Reference, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func jitterFor(cfg config.EstimationConfig, logger *zap.Logger) estimation.Jitter {
	switch {
	case cfg.DisableJitter:
		logger.Info("Yield jitter disabled")
		return estimation.FixedJitter(1)
	case cfg.JitterSeed != nil:
		logger.Info("Yield jitter seeded", zap.Uint64("seed", *cfg.JitterSeed))
		return estimation.NewRandomJitter(*cfg.JitterSeed)
	default:
		return estimation.NewTimeSeededJitter()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
