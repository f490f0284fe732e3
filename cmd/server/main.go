package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/infrastructure/config"
	"github.com/claimdesk/backend/internal/infrastructure/export"
	"github.com/claimdesk/backend/internal/infrastructure/locking"
	"github.com/claimdesk/backend/internal/infrastructure/logger"
	"github.com/claimdesk/backend/internal/infrastructure/mail"
	"github.com/claimdesk/backend/internal/infrastructure/persistence"
	"github.com/claimdesk/backend/internal/infrastructure/rendering"
	"github.com/claimdesk/backend/internal/infrastructure/storage"
	"github.com/claimdesk/backend/internal/interfaces/http/handler"
	"github.com/claimdesk/backend/internal/interfaces/http/middleware"
	"github.com/claimdesk/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting claimdesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Dispatch tables are static; a gap is a programming error, so fail fast
	if err := claims.ValidateMethodTables(); err != nil {
		log.Fatal("Submission method tables are inconsistent", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	claimRepo := persistence.NewGormClaimRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)

	var locker appclaims.ClaimLocker
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisLocker, err := locking.NewRedisLocker(client, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		locker = redisLocker
		log.Info("Using Redis claim locker")
	} else {
		locker = locking.NewMemoryLocker()
	}

	store, err := rendering.NewLocalStore(cfg.Export.OutputDir, log)
	if err != nil {
		log.Fatal("Failed to prepare export directory", zap.Error(err))
	}

	engine := rendering.NewChromedpEngine(&rendering.ChromedpConfig{
		Timeout:   cfg.Export.RenderTimeout,
		RemoteURL: cfg.Export.ChromeRemote,
		NoSandbox: cfg.Export.ChromeNoSandbox,
		Logger:    log,
	})
	defer engine.Close()

	renderer := rendering.NewRenderer(engine, store, log)
	registry, err := export.NewDefaultRegistry(store, renderer, log)
	if err != nil {
		log.Fatal("Export strategy registry is incomplete", zap.Error(err))
	}

	var mailChannel appclaims.MailChannel
	if cfg.Mail.Enabled {
		mailChannel = mail.NewSMTPChannel(&cfg.Mail, store, log)
		log.Info("SMTP mail channel configured", zap.String("host", cfg.Mail.Host))
	} else {
		mailChannel = mail.NewNoopChannel()
	}

	var cloud appclaims.CloudService
	if cfg.Storage.Enabled {
		s3Cloud, err := storage.NewS3CloudService(&cfg.Storage, store, log)
		if err != nil {
			log.Fatal("Failed to configure S3 storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Cloud.EnsureBucket(ctx); err != nil {
			log.Warn("S3 bucket check failed; uploads may fail", zap.Error(err))
		}
		cancel()
		cloud = s3Cloud
		log.Info("S3 cloud delivery configured", zap.String("bucket", cfg.Storage.Bucket))
	}

	validation := appclaims.NewValidationService(inventoryRepo, log)
	gateReqs := claims.StandardRequirements()
	gateReqs.MaxFileSize = cfg.Export.MaxFileSize
	coordinator := appclaims.NewExportCoordinator(
		claimRepo, inventoryRepo, validation, registry, mailChannel, locker, log,
		appclaims.WithDefaultRequirements(gateReqs),
	)
	tracking := appclaims.NewTrackingService(claimRepo, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginEngine := gin.New()
	ginEngine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.BodyLimit(1<<20),
		middleware.CORSWithConfig(corsConfig(cfg)),
	)

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := ginEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
		}
	}

	r := router.NewRouter(ginEngine)
	r.Register(handler.NewClaimHandler(validation, coordinator, tracking, cloud)).
		Register(handler.NewInventoryHandler(inventoryRepo)).
		Register(handler.NewWizardHandler(cloud))
	r.Setup()

	ginEngine.GET("/healthz", healthHandler(db))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
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

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
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
