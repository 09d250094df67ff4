package delivery

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	authdelivery "vidtube-backend/internal/auth/delivery"
	videodto "vidtube-backend/internal/video/dto"
	"vidtube-backend/internal/video/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VideoHandler struct {
	videoUsecase usecase.VideoUsecase
	config       *config.Config
}

func NewVideoHandler(videoUsecase usecase.VideoUsecase, cfg *config.Config) *VideoHandler {
	return &VideoHandler{
		videoUsecase: videoUsecase,
		config:       cfg,
	}
}

func (h *VideoHandler) PublishVideo(c *gin.Context) {
	var req videodto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, response.NewError(http.StatusBadRequest, "invalid request body"))
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		response.Fail(c, response.NewError(http.StatusBadRequest, "video file is required"))
		return
	}

	thumbnail, err := c.FormFile("thumbnail")
	if err != nil {
		response.Fail(c, response.NewError(http.StatusBadRequest, "thumbnail is required"))
		return
	}

	req.VideoFilePath, err = h.saveTempFile(c, videoFile)
	if err != nil {
		response.Fail(c, err)
		return
	}

	req.ThumbnailPath, err = h.saveTempFile(c, thumbnail)
	if err != nil {
		_ = os.Remove(req.VideoFilePath)
		response.Fail(c, err)
		return
	}

	owner := authdelivery.SessionUser(c)
	video, err := h.videoUsecase.PublishVideo(c.Request.Context(), owner.ID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, video, "video published successfully")
}

func (h *VideoHandler) GetVideoByID(c *gin.Context) {
	viewer := authdelivery.SessionUser(c)

	video, err := h.videoUsecase.GetVideoByID(c.Param("id"), viewer.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, video, "video fetched successfully")
}

func (h *VideoHandler) GetWatchHistory(c *gin.Context) {
	viewer := authdelivery.SessionUser(c)

	history, err := h.videoUsecase.GetWatchHistory(viewer.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, history, "watch history fetched successfully")
}

func (h *VideoHandler) saveTempFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.config.TempDir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(h.config.TempDir, uuid.New().String()+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}
