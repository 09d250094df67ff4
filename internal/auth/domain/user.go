package domain

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex" json:"username"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	FullName     string    `json:"fullName"`
	Password     string    `json:"-"` // Never return password in JSON
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage,omitempty"`
	RefreshToken *string   `json:"-"` // Single active slot, overwritten on each issuance
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
