package usecase

import (
	"context"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
)

// AuthUsecase covers the account lifecycle: registration, the token
// issue/rotate cycle, and profile mutations.
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.User, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Logout(userID string) error
	RefreshTokens(refreshToken string) (*authdto.TokenResponse, error)
	ChangePassword(userID, oldPassword, newPassword string) error
	UpdateAccount(userID string, req *authdto.UpdateAccountRequest) (*authdomain.User, error)
	UpdateAvatar(ctx context.Context, userID, localPath string) (*authdomain.User, error)
	UpdateCoverImage(ctx context.Context, userID, localPath string) (*authdomain.User, error)
	ValidateAccessToken(token string) (*authdomain.User, error)
}
