package api

import (
	"net/http"

	"vidtube-backend/internal/auth/delivery"
	authUsecase "vidtube-backend/internal/auth/usecase"
	channelDelivery "vidtube-backend/internal/channel/delivery"
	channelUsecase "vidtube-backend/internal/channel/usecase"
	videoDelivery "vidtube-backend/internal/video/delivery"
	videoUsecase "vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, channelUc channelUsecase.ChannelUsecase, videoUc videoUsecase.VideoUsecase, cfg *config.Config) {
	authHandler := delivery.NewAuthHandler(authUc, cfg)
	channelHandler := channelDelivery.NewChannelHandler(channelUc)
	videoHandler := videoDelivery.NewVideoHandler(videoUc, cfg)

	secured := delivery.AuthMiddleware(authUc)

	api := r.Group("/api/v1")
	{
		// Health check (no auth required)
		api.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// User routes
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.POST("/refresh-token", authHandler.RefreshToken)

			users.POST("/logout", secured, authHandler.Logout)
			users.POST("/change-password", secured, authHandler.ChangePassword)
			users.GET("/current-user", secured, authHandler.CurrentUser)
			users.PATCH("/update-account", secured, authHandler.UpdateAccount)
			users.PATCH("/avatar", secured, authHandler.UpdateAvatar)
			users.PATCH("/cover-image", secured, authHandler.UpdateCoverImage)
			users.GET("/channel/:username", secured, channelHandler.GetChannelProfile)
			users.GET("/history", secured, videoHandler.GetWatchHistory)
		}

		// Subscription routes (protected)
		subscriptions := api.Group("/subscriptions")
		subscriptions.Use(secured)
		{
			subscriptions.POST("/c/:channelId", channelHandler.ToggleSubscription)
		}

		// Video routes (protected)
		videos := api.Group("/videos")
		videos.Use(secured)
		{
			videos.POST("", videoHandler.PublishVideo)
			videos.GET("/:id", videoHandler.GetVideoByID)
		}
	}
}
