package repository

import channeldomain "vidtube-backend/internal/channel/domain"

type SubscriptionRepository interface {
	Create(sub *channeldomain.Subscription) error
	Delete(subscriberID, channelID string) error
	CountByChannel(channelID string) (int64, error)
	CountBySubscriber(subscriberID string) (int64, error)
	Exists(subscriberID, channelID string) (bool, error)
}
