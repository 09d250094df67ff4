package usecase

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/repository"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/media"
	"vidtube-backend/pkg/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	uploader media.Uploader
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, uploader media.Uploader, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		uploader: uploader,
		config:   cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if fullName == "" || email == "" || username == "" || req.Password == "" {
		removeTempFiles(req.AvatarPath, req.CoverImagePath)
		return nil, response.NewError(http.StatusBadRequest, "all fields are required")
	}

	existing, err := u.userRepo.FindByUsernameOrEmail(username, email)
	if err != nil {
		removeTempFiles(req.AvatarPath, req.CoverImagePath)
		return nil, err
	}
	if existing != nil {
		removeTempFiles(req.AvatarPath, req.CoverImagePath)
		return nil, response.NewError(http.StatusConflict, "username or email already exists")
	}

	if req.AvatarPath == "" {
		removeTempFiles(req.CoverImagePath)
		return nil, response.NewError(http.StatusBadRequest, "avatar file is required")
	}

	// The uploader removes the temp file on both outcomes.
	avatarURL, err := u.uploader.UploadFile(ctx, req.AvatarPath)
	if err != nil {
		removeTempFiles(req.CoverImagePath)
		return nil, response.NewError(http.StatusBadRequest, "failed to upload avatar")
	}

	coverImageURL := ""
	if req.CoverImagePath != "" {
		coverImageURL, err = u.uploader.UploadFile(ctx, req.CoverImagePath)
		if err != nil {
			return nil, response.NewError(http.StatusBadRequest, "failed to upload cover image")
		}
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   hashedPassword,
		Avatar:     avatarURL,
		CoverImage: coverImageURL,
	}

	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	created, err := u.userRepo.FindByID(user.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, response.NewError(http.StatusBadRequest, "issue while registering the user")
	}

	return created, nil
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" && email == "" {
		return nil, response.NewError(http.StatusBadRequest, "username or email is required")
	}

	user, err := u.userRepo.FindByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, response.NewError(http.StatusNotFound, "user with the given username or email does not exist")
	}

	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, response.NewError(http.StatusUnauthorized, "invalid user credentials")
	}

	return u.issueTokenPair(user)
}

func (u *authUsecase) Logout(userID string) error {
	return u.userRepo.UpdateRefreshToken(userID, nil)
}

func (u *authUsecase) RefreshTokens(refreshToken string) (*authdto.TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.RefreshTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, response.NewError(http.StatusUnauthorized, "invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, response.NewError(http.StatusUnauthorized, "invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, response.NewError(http.StatusUnauthorized, "invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, response.NewError(http.StatusUnauthorized, "invalid refresh token")
	}

	// Single-slot rotation: only the most recently issued refresh token is
	// accepted.
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, response.NewError(http.StatusUnauthorized, "refresh token is expired or used")
	}

	return u.issueTokenPair(user)
}

func (u *authUsecase) ChangePassword(userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return response.NewError(http.StatusBadRequest, "new password is required")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return response.NewError(http.StatusUnauthorized, "user not found")
	}

	if !repository.CheckPasswordHash(oldPassword, user.Password) {
		return response.NewError(http.StatusBadRequest, "invalid old password")
	}

	hashedPassword, err := repository.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(userID, hashedPassword)
}

func (u *authUsecase) UpdateAccount(userID string, req *authdto.UpdateAccountRequest) (*authdomain.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if fullName == "" || email == "" {
		return nil, response.NewError(http.StatusBadRequest, "all fields are required")
	}

	if err := u.userRepo.UpdateAccount(userID, fullName, email); err != nil {
		return nil, err
	}

	return u.userRepo.FindByID(userID)
}

func (u *authUsecase) UpdateAvatar(ctx context.Context, userID, localPath string) (*authdomain.User, error) {
	return u.updateImage(ctx, userID, localPath, "avatar", u.userRepo.UpdateAvatar)
}

func (u *authUsecase) UpdateCoverImage(ctx context.Context, userID, localPath string) (*authdomain.User, error) {
	return u.updateImage(ctx, userID, localPath, "cover image", u.userRepo.UpdateCoverImage)
}

func (u *authUsecase) updateImage(ctx context.Context, userID, localPath, kind string, save func(userID, url string) error) (*authdomain.User, error) {
	if localPath == "" {
		return nil, response.NewError(http.StatusBadRequest, kind+" file is missing")
	}

	url, err := u.uploader.UploadFile(ctx, localPath)
	if err != nil {
		return nil, response.NewError(http.StatusBadRequest, "failed to upload "+kind)
	}

	if err := save(userID, url); err != nil {
		return nil, err
	}

	return u.userRepo.FindByID(userID)
}

func (u *authUsecase) ValidateAccessToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.AccessTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

// issueTokenPair generates a fresh access/refresh pair and stores the
// refresh token in the user's slot, invalidating the previous session.
// Concurrent logins race last-write-wins; the database arbitrates.
func (u *authUsecase) issueTokenPair(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, response.NewError(http.StatusInternalServerError, "error when generating access and refresh tokens")
	}

	refreshToken, err := u.generateRefreshToken(user)
	if err != nil {
		return nil, response.NewError(http.StatusInternalServerError, "error when generating access and refresh tokens")
	}

	if err := u.userRepo.UpdateRefreshToken(user.ID, &refreshToken); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token_id": uuid.New().String(),
		"exp":      time.Now().Add(u.config.AccessTokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.AccessTokenSecret))
}

func (u *authUsecase) generateRefreshToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": uuid.New().String(),
		"exp":      time.Now().Add(u.config.RefreshTokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.RefreshTokenSecret))
}

func removeTempFiles(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}
