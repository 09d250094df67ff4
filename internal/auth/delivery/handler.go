package delivery

import (
	"context"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, response.NewError(http.StatusBadRequest, "invalid request body"))
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, response.NewError(http.StatusBadRequest, "avatar file is required"))
		return
	}

	req.AvatarPath, err = h.saveTempFile(c, avatarFile)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if coverFile, err := c.FormFile("coverImage"); err == nil {
		req.CoverImagePath, err = h.saveTempFile(c, coverFile)
		if err != nil {
			_ = os.Remove(req.AvatarPath)
			response.Fail(c, err)
			return
		}
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, user, "user registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.NewError(http.StatusBadRequest, "invalid request body"))
		return
	}

	tokens, err := h.authUsecase.Login(&req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	h.setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)
	response.OK(c, http.StatusOK, tokens, "user logged in successfully")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	user := SessionUser(c)
	if err := h.authUsecase.Logout(user.ID); err != nil {
		response.Fail(c, err)
		return
	}

	h.clearAuthCookies(c)
	response.OK(c, http.StatusOK, gin.H{}, "user has been logged out")
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie("refreshToken")
	if refreshToken == "" {
		var req authdto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		response.Fail(c, response.NewError(http.StatusUnauthorized, "unauthorized request"))
		return
	}

	tokens, err := h.authUsecase.RefreshTokens(refreshToken)
	if err != nil {
		response.Fail(c, err)
		return
	}

	h.setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)
	response.OK(c, http.StatusOK, authdto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "access token refreshed")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req authdto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.NewError(http.StatusBadRequest, "invalid request body"))
		return
	}

	user := SessionUser(c)
	if err := h.authUsecase.ChangePassword(user.ID, req.OldPassword, req.NewPassword); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, gin.H{}, "password changed successfully")
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	response.OK(c, http.StatusOK, SessionUser(c), "current user fetched successfully")
}

func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	var req authdto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.NewError(http.StatusBadRequest, "invalid request body"))
		return
	}

	user := SessionUser(c)
	updated, err := h.authUsecase.UpdateAccount(user.ID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, updated, "account details updated successfully")
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.authUsecase.UpdateAvatar)
}

func (h *AuthHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.authUsecase.UpdateCoverImage)
}

func (h *AuthHandler) updateImage(c *gin.Context, field string, update func(ctx context.Context, userID, localPath string) (*authdomain.User, error)) {
	file, err := c.FormFile(field)
	if err != nil {
		response.Fail(c, response.NewError(http.StatusBadRequest, field+" file is missing"))
		return
	}

	localPath, err := h.saveTempFile(c, file)
	if err != nil {
		response.Fail(c, err)
		return
	}

	user := SessionUser(c)
	updated, err := update(c.Request.Context(), user.ID, localPath)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, updated, field+" updated successfully")
}

func (h *AuthHandler) saveTempFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.config.TempDir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(h.config.TempDir, uuid.New().String()+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie("accessToken", accessToken, int(h.config.AccessTokenExpiry.Seconds()), "/", "", true, true)
	c.SetCookie("refreshToken", refreshToken, int(h.config.RefreshTokenExpiry.Seconds()), "/", "", true, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}
