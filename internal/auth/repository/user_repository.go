package repository

import (
	"errors"
	"time"

	authdomain "vidtube-backend/internal/auth/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *authdomain.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsernameOrEmail(username, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("username = ? OR email = ?", username, email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateRefreshToken(userID string, token *string) error {
	return r.db.Model(&authdomain.User{}).Where("id = ?", userID).
		Updates(map[string]any{"refresh_token": token, "updated_at": time.Now()}).Error
}

func (r *userRepository) UpdatePassword(userID, hashedPassword string) error {
	return r.db.Model(&authdomain.User{}).Where("id = ?", userID).
		Updates(map[string]any{"password": hashedPassword, "updated_at": time.Now()}).Error
}

func (r *userRepository) UpdateAccount(userID, fullName, email string) error {
	return r.db.Model(&authdomain.User{}).Where("id = ?", userID).
		Updates(map[string]any{"full_name": fullName, "email": email, "updated_at": time.Now()}).Error
}

func (r *userRepository) UpdateAvatar(userID, avatarURL string) error {
	return r.db.Model(&authdomain.User{}).Where("id = ?", userID).
		Updates(map[string]any{"avatar": avatarURL, "updated_at": time.Now()}).Error
}

func (r *userRepository) UpdateCoverImage(userID, coverImageURL string) error {
	return r.db.Model(&authdomain.User{}).Where("id = ?", userID).
		Updates(map[string]any{"cover_image": coverImageURL, "updated_at": time.Now()}).Error
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
