package repository

import (
	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"
)

// VideoRepository defines data access for videos and watch history.
// Finders return (nil, nil) when no record matches.
type VideoRepository interface {
	Create(video *videodomain.Video) error
	FindByID(id string) (*videodomain.Video, error)
	IncrementViews(id string) error
	AddWatchHistoryEntry(userID, videoID string) error

	// GetWatchHistory resolves the user's history, most recently watched
	// first, with each video carrying its owner projection.
	GetWatchHistory(userID string) ([]videodto.VideoWithOwner, error)
}
