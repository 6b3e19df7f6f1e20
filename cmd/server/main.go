package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devfolio-auth/internal/auth"
	"devfolio-auth/internal/config"
	"devfolio-auth/internal/controllers"
	"devfolio-auth/internal/db"
	"devfolio-auth/internal/middleware"
	"devfolio-auth/internal/notify"
	"devfolio-auth/internal/redis"
	"devfolio-auth/internal/store"
	"devfolio-auth/internal/token"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	var st store.Store
	switch cfg.StoreBackend {
	case "redis":
		rdb, err := redis.Init(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Fatal("init redis", zap.Error(err))
		}
		st = store.NewRedisStore(rdb)
	default:
		dbConn, err := db.Init(cfg.DatabaseDSN)
		if err != nil {
			logger.Fatal("init db", zap.Error(err))
		}
		st = store.NewGormStore(dbConn)
	}

	email := notify.NewSMTPClient(cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPass, cfg.FromEmail)
	sms := notify.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	svc := auth.NewService(st, email, sms, issuer, logger, cfg.OTPTTL)
	ctrl := controllers.NewAuthController(svc, st, logger)

	r := gin.Default()

	api := r.Group("/api")
	{
		api.POST("/register", ctrl.Register)
		api.POST("/verify-otp", ctrl.VerifyOTP) // completes registration
		api.POST("/login", ctrl.Login)          // step 1: password -> send SMS OTP
		api.POST("/verify-login-otp", ctrl.VerifyLoginOTP)
	}

	protected := r.Group("/api")
	protected.Use(middleware.JWTMiddleware(cfg.JWTSecret))
	{
		protected.GET("/me", ctrl.Me)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
