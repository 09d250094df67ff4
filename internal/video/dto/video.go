package dto

import videodomain "vidtube-backend/internal/video/domain"

type PublishVideoRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`

	// Local temp paths of the uploaded files, filled in by the handler.
	VideoFilePath string `form:"-"`
	ThumbnailPath string `form:"-"`
}

// Owner is the reduced owner projection nested inside video read models.
type Owner struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type VideoWithOwner struct {
	videodomain.Video
	Owner Owner `json:"owner"`
}
