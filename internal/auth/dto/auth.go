package dto

import authdomain "vidtube-backend/internal/auth/domain"

type RegisterRequest struct {
	FullName string `form:"fullName"`
	Email    string `form:"email"`
	Username string `form:"username"`
	Password string `form:"password"`

	// Local temp paths of the uploaded files, filled in by the handler.
	AvatarPath     string `form:"-"`
	CoverImagePath string `form:"-"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	User         *authdomain.User `json:"user,omitempty"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
}
