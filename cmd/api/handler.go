package api

import (
	authUsecase "vidtube-backend/internal/auth/usecase"
	channelUsecase "vidtube-backend/internal/channel/usecase"
	videoUsecase "vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authUsecase.AuthUsecase
	channelUsecase channelUsecase.ChannelUsecase
	videoUsecase   videoUsecase.VideoUsecase
	config         *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, channelUc channelUsecase.ChannelUsecase, videoUc videoUsecase.VideoUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:    authUc,
		channelUsecase: channelUc,
		videoUsecase:   videoUc,
		config:         cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := h.config.CORSOrigin
		if origin == "*" {
			if reqOrigin := c.Request.Header.Get("Origin"); reqOrigin != "" {
				origin = reqOrigin
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.channelUsecase, h.videoUsecase, h.config)

	return r.Run(addr)
}
