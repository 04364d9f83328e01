package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pgRepo "github.com/shopline-platform/auth-service/internal/adapters/db/postgres"
	redisRepo "github.com/shopline-platform/auth-service/internal/adapters/db/redis"
	authJwt "github.com/shopline-platform/auth-service/internal/auth/jwt"
	"github.com/shopline-platform/auth-service/internal/auth/password"
	"github.com/shopline-platform/auth-service/internal/auth/service"
	"github.com/shopline-platform/auth-service/internal/config"
	lg "github.com/shopline-platform/auth-service/internal/infra/log"
	"github.com/shopline-platform/auth-service/internal/migrate"
	httpTransport "github.com/shopline-platform/auth-service/internal/transport/http"
	httpmw "github.com/shopline-platform/auth-service/internal/transport/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	validate := validator.New()
	if err := password.RegisterStrongPolicy(validate); err != nil {
		zapLog.Fatal("register password policy", zap.Error(err))
	}

	userRepo := pgRepo.NewUserRepo(db)
	tokenRepo := pgRepo.NewRefreshTokenRepo(db)
	throttle := redisRepo.NewLoginThrottle(redisCli, cfg.LoginMaxFailures, cfg.LoginFailureWindow)
	issuer := authJwt.NewHMACIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.Issuer, cfg.Audience)
	hasher := password.NewHasher(cfg.PasswordPepper)

	svc := service.NewAuthService(userRepo, tokenRepo, throttle, issuer, hasher, validate)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(zapLog))
	router.Use(httpmw.Metrics())
	router.Use(httpmw.RateLimitPerIP(cfg.RateLimitRPS, cfg.RateLimitBurst, 10_000, time.Hour))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	httpTransport.NewHandler(svc, zapLog).RegisterRoutes(router)
	httpTransport.RegisterHealth(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}

	rootCtx, cancel := context.WithCancel(context.Background())
	g, _ := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("auth service listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
