package repository

import (
	"errors"
	"time"

	authdomain "vidtube-backend/internal/auth/domain"
	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// videoRepository implements VideoRepository interface
type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new instance of videoRepository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{
		db: db,
	}
}

func (r *videoRepository) Create(video *videodomain.Video) error {
	video.ID = uuid.New().String()
	video.CreatedAt = time.Now()
	video.UpdatedAt = time.Now()
	return r.db.Create(video).Error
}

func (r *videoRepository) FindByID(id string) (*videodomain.Video, error) {
	var video videodomain.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) IncrementViews(id string) error {
	return r.db.Model(&videodomain.Video{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *videoRepository) AddWatchHistoryEntry(userID, videoID string) error {
	entry := &videodomain.WatchHistoryEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: time.Now(),
	}
	// Re-watching moves the entry to the front of the history.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]any{"watched_at": entry.WatchedAt}),
	}).Create(entry).Error
}

func (r *videoRepository) GetWatchHistory(userID string) ([]videodto.VideoWithOwner, error) {
	var entries []videodomain.WatchHistoryEntry
	err := r.db.Where("user_id = ?", userID).Order("watched_at DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	history := make([]videodto.VideoWithOwner, 0, len(entries))
	if len(entries) == 0 {
		return history, nil
	}

	videoIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		videoIDs = append(videoIDs, entry.VideoID)
	}

	var videos []videodomain.Video
	if err := r.db.Where("id IN ?", videoIDs).Find(&videos).Error; err != nil {
		return nil, err
	}

	videosByID := make(map[string]videodomain.Video, len(videos))
	ownerIDs := make([]string, 0, len(videos))
	for _, video := range videos {
		videosByID[video.ID] = video
		ownerIDs = append(ownerIDs, video.OwnerID)
	}

	var owners []authdomain.User
	if err := r.db.Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
		return nil, err
	}

	ownersByID := make(map[string]authdomain.User, len(owners))
	for _, owner := range owners {
		ownersByID[owner.ID] = owner
	}

	// Preserve the history order; skip ids whose video has gone away.
	for _, entry := range entries {
		video, ok := videosByID[entry.VideoID]
		if !ok {
			continue
		}
		owner := ownersByID[video.OwnerID]
		history = append(history, videodto.VideoWithOwner{
			Video: video,
			Owner: videodto.Owner{
				FullName: owner.FullName,
				Username: owner.Username,
				Avatar:   owner.Avatar,
			},
		})
	}

	return history, nil
}
