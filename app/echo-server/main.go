package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpmetrics "youthBanking/app/echo-server/metrics"
	"youthBanking/app/echo-server/router"
	"youthBanking/business/category"
	"youthBanking/business/community"
	"youthBanking/business/metal"
	"youthBanking/business/product"
	"youthBanking/business/quiz"
	"youthBanking/business/recommend"
	userService "youthBanking/business/user"
	"youthBanking/internal/middleware"
	"youthBanking/internal/repository/finlife"
	"youthBanking/internal/repository/notification"
	psqlRepo "youthBanking/internal/repository/postgres"
	redisRepo "youthBanking/internal/repository/redis"
	"youthBanking/internal/rest"
	"youthBanking/pkg/config"
	"youthBanking/pkg/database"
	"youthBanking/pkg/database/redis"
	"youthBanking/pkg/logger"
	"youthBanking/pkg/metrics"
	"youthBanking/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Youth Banking API", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey, cfg.JWT.TTL)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer func() {
		if err := redis.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close redis", "error", err)
		}
	}()

	metrics.Init()
	httpmetrics.Init()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	finlifeClient := finlife.NewBreakerClient(finlife.NewClient(finlife.Config{
		BaseURL:        cfg.Finlife.BaseURL,
		APIKey:         cfg.Finlife.APIKey,
		TopFinGrpNo:    cfg.Finlife.TopFinGrpNo,
		RequestsPerSec: cfg.Finlife.RequestsPerSec,
		Timeout:        cfg.Finlife.Timeout,
	}))

	renderer, err := quiz.NewPNGRenderer(cfg.Quiz.CertificateFont)
	if err != nil {
		logger.Fatal("Failed to load certificate font", "error", err)
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	subscriptionRepo := psqlRepo.NewSubscriptionRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	communityRepo := psqlRepo.NewCommunityRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	quizRepo := psqlRepo.NewQuizRepository(db)
	metalRepo := psqlRepo.NewMetalPriceRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	userService := userService.NewUserService(userRepo, subscriptionRepo, productRepo, tokenRepo, mailjetEmail, validate, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	productService := product.NewProductService(productRepo, finlifeClient)
	recommendService := recommend.NewService(userRepo, subscriptionRepo, productRepo, recommend.Config{
		Neighbors:  cfg.Recommend.Neighbors,
		TopPerKind: cfg.Recommend.TopPerKind,
		TopTotal:   cfg.Recommend.TopTotal,
	})
	communityService := community.NewCommunityService(communityRepo)
	categoryService := category.NewCategoryService(categoryRepo)
	quizService := quiz.NewQuizService(quizRepo, userRepo, renderer, cfg.Quiz.CertificateDir)
	metalService := metal.NewMetalService(metalRepo, cfg.Metal.DataDir)

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	profileHandler := rest.NewProfileHandler(userService)
	productHandler := rest.NewProductHandler(productService)
	recommendationHandler := rest.NewRecommendationHandler(recommendService)
	communityHandler := rest.NewCommunityHandler(communityService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	quizHandler := rest.NewQuizHandler(quizService)
	metalHandler := rest.NewMetalHandler(metalService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.TraceID())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.App.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(userService)
	adminOnly := middleware.AdminOnly()
	optionalAuth := middleware.OptionalAuth()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupProfileRoutes(api, profileHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupRecommendationRoutes(api, recommendationHandler, authRequired)
	router.SetupCommunityRoutes(api, communityHandler, authRequired, optionalAuth)
	router.SetupAcademyRoutes(api, quizHandler, categoryHandler, authRequired, adminOnly)
	router.SetupMetalRoutes(api, metalHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
