package usecase

import (
	"context"
	"net/http"
	"os"
	"strings"

	authrepo "vidtube-backend/internal/auth/repository"
	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"
	"vidtube-backend/internal/video/repository"
	"vidtube-backend/pkg/media"
	"vidtube-backend/pkg/response"
)

type VideoUsecase interface {
	PublishVideo(ctx context.Context, ownerID string, req *videodto.PublishVideoRequest) (*videodomain.Video, error)
	GetVideoByID(videoID, viewerID string) (*videodto.VideoWithOwner, error)
	GetWatchHistory(userID string) ([]videodto.VideoWithOwner, error)
}

// videoUsecase implements VideoUsecase interface
type videoUsecase struct {
	videoRepo repository.VideoRepository
	userRepo  authrepo.UserRepository
	uploader  media.Uploader
}

// NewVideoUsecase creates a new instance of videoUsecase
func NewVideoUsecase(videoRepo repository.VideoRepository, userRepo authrepo.UserRepository, uploader media.Uploader) VideoUsecase {
	return &videoUsecase{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		uploader:  uploader,
	}
}

func (u *videoUsecase) PublishVideo(ctx context.Context, ownerID string, req *videodto.PublishVideoRequest) (*videodomain.Video, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		removeTempFiles(req.VideoFilePath, req.ThumbnailPath)
		return nil, response.NewError(http.StatusBadRequest, "title is required")
	}
	if req.VideoFilePath == "" || req.ThumbnailPath == "" {
		removeTempFiles(req.VideoFilePath, req.ThumbnailPath)
		return nil, response.NewError(http.StatusBadRequest, "video file and thumbnail are required")
	}

	// The uploader removes the temp files on both outcomes.
	videoURL, err := u.uploader.UploadFile(ctx, req.VideoFilePath)
	if err != nil {
		removeTempFiles(req.ThumbnailPath)
		return nil, response.NewError(http.StatusBadRequest, "failed to upload video file")
	}

	thumbnailURL, err := u.uploader.UploadFile(ctx, req.ThumbnailPath)
	if err != nil {
		return nil, response.NewError(http.StatusBadRequest, "failed to upload thumbnail")
	}

	video := &videodomain.Video{
		OwnerID:     ownerID,
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		IsPublished: true,
	}

	if err := u.videoRepo.Create(video); err != nil {
		return nil, err
	}

	return video, nil
}

// GetVideoByID returns the video with its owner projection, increments the
// view counter, and records the viewer's watch-history entry.
func (u *videoUsecase) GetVideoByID(videoID, viewerID string) (*videodto.VideoWithOwner, error) {
	video, err := u.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, response.NewError(http.StatusNotFound, "video does not exist")
	}

	if err := u.videoRepo.IncrementViews(video.ID); err != nil {
		return nil, err
	}
	video.Views++

	if err := u.videoRepo.AddWatchHistoryEntry(viewerID, video.ID); err != nil {
		return nil, err
	}

	owner, err := u.userRepo.FindByID(video.OwnerID)
	if err != nil {
		return nil, err
	}

	result := &videodto.VideoWithOwner{Video: *video}
	if owner != nil {
		result.Owner = videodto.Owner{
			FullName: owner.FullName,
			Username: owner.Username,
			Avatar:   owner.Avatar,
		}
	}

	return result, nil
}

func (u *videoUsecase) GetWatchHistory(userID string) ([]videodto.VideoWithOwner, error) {
	return u.videoRepo.GetWatchHistory(userID)
}

func removeTempFiles(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}
