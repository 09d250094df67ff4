package repository

import (
	"time"

	channeldomain "vidtube-backend/internal/channel/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// subscriptionRepository implements SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new instance of subscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

func (r *subscriptionRepository) Create(sub *channeldomain.Subscription) error {
	sub.ID = uuid.New().String()
	sub.CreatedAt = time.Now()
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) Delete(subscriberID, channelID string) error {
	return r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&channeldomain.Subscription{}).Error
}

func (r *subscriptionRepository) CountByChannel(channelID string) (int64, error) {
	var count int64
	err := r.db.Model(&channeldomain.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountBySubscriber(subscriberID string) (int64, error) {
	var count int64
	err := r.db.Model(&channeldomain.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) Exists(subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.Model(&channeldomain.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}
