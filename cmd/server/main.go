package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/farmmarket/backend/internal/application/catalog"
	identityapp "github.com/farmmarket/backend/internal/application/identity"
	marketapp "github.com/farmmarket/backend/internal/application/market"
	orderapp "github.com/farmmarket/backend/internal/application/order"
	"github.com/farmmarket/backend/internal/domain/cart"
	"github.com/farmmarket/backend/internal/infrastructure/auth"
	"github.com/farmmarket/backend/internal/infrastructure/cache"
	"github.com/farmmarket/backend/internal/infrastructure/config"
	"github.com/farmmarket/backend/internal/infrastructure/logger"
	"github.com/farmmarket/backend/internal/infrastructure/persistence"
	"github.com/farmmarket/backend/internal/interfaces/http/handler"
	"github.com/farmmarket/backend/internal/interfaces/http/middleware"
	"github.com/farmmarket/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLogLevel := gormlogger.Warn
	if cfg.App.Env == "development" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLogLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	// Token blacklist
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis for token blacklist", zap.Error(err))
	}

	// Cart store
	var cartStore cart.Store
	switch cfg.Cart.Backend {
	case "redis":
		cartStore, err = cache.NewRedisCartStore(cfg.Redis, cfg.Cart.TTL)
		if err != nil {
			log.Fatal("Failed to connect to redis for cart store", zap.Error(err))
		}
		log.Info("Using redis cart store", zap.Duration("ttl", cfg.Cart.TTL))
	default:
		cartStore = cache.NewInMemoryCartStore(cfg.Cart.TTL)
		log.Info("Using in-memory cart store", zap.Duration("ttl", cfg.Cart.TTL))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	offerRepo := persistence.NewGormOfferRepository(db.DB)
	harvestRepo := persistence.NewGormSelfHarvestEventRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	checkoutRepo := persistence.NewGormCheckoutRepository(db.DB)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, addressRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	offerService := marketapp.NewOfferService(offerRepo, productRepo, log)
	harvestService := marketapp.NewSelfHarvestService(harvestRepo, offerRepo, addressRepo, log)
	reviewService := marketapp.NewReviewService(reviewRepo, offerRepo, log)
	cartService := orderapp.NewCartService(cartStore, offerRepo, log)
	checkoutService := orderapp.NewCheckoutService(cartStore, offerRepo, checkoutRepo, log)
	orderService := orderapp.NewOrderService(orderRepo, offerRepo, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, offerService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	offerHandler := handler.NewOfferHandler(offerService)
	harvestHandler := handler.NewSelfHarvestHandler(harvestService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(checkoutService, orderService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to configure request validator", zap.Error(err))
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health"))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(middleware.JWTAuthMiddlewareWithConfig(jwtConfig)),
	)
	r.Register(authHandler).
		Register(userHandler).
		Register(categoryHandler).
		Register(productHandler).
		Register(offerHandler).
		Register(harvestHandler).
		Register(reviewHandler).
		Register(cartHandler).
		Register(orderHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
