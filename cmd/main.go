package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"service-review-backend/internal/auth"
	"service-review-backend/internal/config"
	"service-review-backend/internal/handler"
	"service-review-backend/internal/repository"
	"service-review-backend/internal/services"
	"service-review-backend/utils"
	"service-review-backend/utils/mongodb"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// MongoDB
	mongoClient, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	db := mongoClient.Database(cfg.Mongo.DBName)

	// Redis cache, optional
	var cache services.Cache
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal("Invalid Redis URL:", err)
		}

		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}

		shutdownManager.Register(func(ctx context.Context) error {
			log.Println("[SHUTDOWN] Closing Redis connection...")
			return redisClient.Close()
		})

		cache = utils.NewRedisCache(redisClient)
	}

	// Repositories and services
	serviceRepo := repository.NewServiceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)

	aggregator := services.NewAggregator(serviceRepo, reviewRepo)
	catalogService := services.NewCatalogService(serviceRepo, cache)
	reviewService := services.NewReviewService(reviewRepo, aggregator, cache)
	userService := services.NewUserService(userRepo, cache)
	countsService := services.NewCountsService(serviceRepo, reviewRepo, userRepo, cache)

	serviceHandler := handler.NewServiceHandler(catalogService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	userHandler := handler.NewUserHandler(userService, countsService)

	verifier := auth.NewGoogleVerifier(cfg.Auth.GoogleClientID)
	protected := auth.Middleware(verifier)

	// Router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Service Review System Server is running!")
	})

	// Public routes
	router.GET("/services", serviceHandler.GetServices)
	router.GET("/services/:id", serviceHandler.GetServiceByID)
	router.GET("/featured", serviceHandler.GetFeatured)
	router.GET("/reviews", reviewHandler.GetReviews)
	router.GET("/latest-review", reviewHandler.GetLatestReviews)
	router.GET("/user", userHandler.GetUser)
	router.POST("/user", userHandler.CreateUser)
	router.GET("/counts", userHandler.GetCounts)

	// Bearer-gated routes
	router.POST("/allServices", protected, serviceHandler.CreateService)
	router.GET("/my-service/:email", protected, serviceHandler.GetMyServices)
	router.PATCH("/my-service", protected, serviceHandler.UpdateService)
	router.DELETE("/my-service", protected, serviceHandler.DeleteService)
	router.GET("/my-review", protected, reviewHandler.GetMyReviews)
	router.POST("/review", protected, reviewHandler.CreateReview)
	router.PATCH("/review/:id", protected, reviewHandler.UpdateReview)
	router.DELETE("/review/:id", protected, reviewHandler.DeleteReview)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Service review backend running on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}
