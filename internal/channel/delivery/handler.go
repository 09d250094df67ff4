package delivery

import (
	"net/http"

	authdelivery "vidtube-backend/internal/auth/delivery"
	"vidtube-backend/internal/channel/usecase"
	"vidtube-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelUsecase usecase.ChannelUsecase
}

func NewChannelHandler(channelUsecase usecase.ChannelUsecase) *ChannelHandler {
	return &ChannelHandler{
		channelUsecase: channelUsecase,
	}
}

func (h *ChannelHandler) GetChannelProfile(c *gin.Context) {
	viewer := authdelivery.SessionUser(c)

	profile, err := h.channelUsecase.GetChannelProfile(c.Param("username"), viewer.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, profile, "channel profile fetched successfully")
}

func (h *ChannelHandler) ToggleSubscription(c *gin.Context) {
	viewer := authdelivery.SessionUser(c)

	subscribed, err := h.channelUsecase.ToggleSubscription(viewer.ID, c.Param("channelId"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	message := "unsubscribed successfully"
	if subscribed {
		message = "subscribed successfully"
	}
	response.OK(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}
