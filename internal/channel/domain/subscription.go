package domain

import "time"

// Subscription is a directed edge: subscriber follows channel. Both ends
// are user ids.
type Subscription struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	SubscriberID string    `gorm:"index" json:"subscriberId"`
	ChannelID    string    `gorm:"index" json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}
