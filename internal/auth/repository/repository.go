package repository

import authdomain "vidtube-backend/internal/auth/domain"

// UserRepository defines data access for user records. Finders return
// (nil, nil) when no record matches.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByID(id string) (*authdomain.User, error)
	FindByUsername(username string) (*authdomain.User, error)
	FindByUsernameOrEmail(username, email string) (*authdomain.User, error)

	// Single-column updates. Hashing happens in the usecase and only when
	// the password actually changes; none of these touch unrelated fields.
	UpdateRefreshToken(userID string, token *string) error
	UpdatePassword(userID, hashedPassword string) error
	UpdateAccount(userID, fullName, email string) error
	UpdateAvatar(userID, avatarURL string) error
	UpdateCoverImage(userID, coverImageURL string) error
}
