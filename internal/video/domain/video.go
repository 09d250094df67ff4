package domain

import "time"

type Video struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"index" json:"ownerId"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WatchHistoryEntry is one row of a user's ordered watch history. The
// (user, video) pair is unique; re-watching bumps WatchedAt instead of
// appending a duplicate.
type WatchHistoryEntry struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_watch_user_video" json:"userId"`
	VideoID   string    `gorm:"uniqueIndex:idx_watch_user_video" json:"videoId"`
	WatchedAt time.Time `gorm:"index" json:"watchedAt"`
}
