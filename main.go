package main

import (
	"context"
	"log"

	api "vidtube-backend/cmd/api"
	authdomain "vidtube-backend/internal/auth/domain"
	authRepo "vidtube-backend/internal/auth/repository"
	authUsecase "vidtube-backend/internal/auth/usecase"
	channeldomain "vidtube-backend/internal/channel/domain"
	channelRepo "vidtube-backend/internal/channel/repository"
	channelUsecase "vidtube-backend/internal/channel/usecase"
	videodomain "vidtube-backend/internal/video/domain"
	videoRepo "vidtube-backend/internal/video/repository"
	videoUsecase "vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/database"
	"vidtube-backend/pkg/media"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &channeldomain.Subscription{}, &videodomain.Video{}, &videodomain.WatchHistoryEntry{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize media host client
	uploader, err := media.NewClient(context.Background(), cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatal("Failed to connect to media host:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	subscriptionRepository := channelRepo.NewSubscriptionRepository(db)
	videoRepository := videoRepo.NewVideoRepository(db)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, uploader, cfg)
	channelUsecaseInstance := channelUsecase.NewChannelUsecase(userRepository, subscriptionRepository)
	videoUsecaseInstance := videoUsecase.NewVideoUsecase(videoRepository, userRepository, uploader)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, channelUsecaseInstance, videoUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
