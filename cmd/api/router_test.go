package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
	channeldto "vidtube-backend/internal/channel/dto"
	videodomain "vidtube-backend/internal/video/domain"
	videodto "vidtube-backend/internal/video/dto"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validAccessToken  = "valid-access-token"
	validRefreshToken = "valid-refresh-token"
)

var sessionUser = &authdomain.User{
	ID:       "user-1",
	Username: "testuser",
	Email:    "test@example.com",
	FullName: "Test User",
	Avatar:   "https://media.test/avatar.png",
}

type fakeAuthUsecase struct {
	loggedOut       bool
	passwordChanged bool
}

func (f *fakeAuthUsecase) Register(_ context.Context, req *authdto.RegisterRequest) (*authdomain.User, error) {
	if req.FullName == "" || req.Email == "" || req.Username == "" || req.Password == "" {
		return nil, response.NewError(http.StatusBadRequest, "all fields are required")
	}
	return sessionUser, nil
}

func (f *fakeAuthUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	if req.Username == "" && req.Email == "" {
		return nil, response.NewError(http.StatusBadRequest, "username or email is required")
	}
	if req.Username != "testuser" {
		return nil, response.NewError(http.StatusNotFound, "user with the given username or email does not exist")
	}
	return &authdto.TokenResponse{
		User:         sessionUser,
		AccessToken:  validAccessToken,
		RefreshToken: validRefreshToken,
	}, nil
}

func (f *fakeAuthUsecase) Logout(userID string) error {
	f.loggedOut = true
	return nil
}

func (f *fakeAuthUsecase) RefreshTokens(refreshToken string) (*authdto.TokenResponse, error) {
	if refreshToken != validRefreshToken {
		return nil, response.NewError(http.StatusUnauthorized, "refresh token is expired or used")
	}
	return &authdto.TokenResponse{
		User:         sessionUser,
		AccessToken:  "rotated-access-token",
		RefreshToken: "rotated-refresh-token",
	}, nil
}

func (f *fakeAuthUsecase) ChangePassword(userID, oldPassword, newPassword string) error {
	if oldPassword != "secret123" {
		return response.NewError(http.StatusBadRequest, "invalid old password")
	}
	f.passwordChanged = true
	return nil
}

func (f *fakeAuthUsecase) UpdateAccount(userID string, req *authdto.UpdateAccountRequest) (*authdomain.User, error) {
	if req.FullName == "" || req.Email == "" {
		return nil, response.NewError(http.StatusBadRequest, "all fields are required")
	}
	return sessionUser, nil
}

func (f *fakeAuthUsecase) UpdateAvatar(_ context.Context, userID, localPath string) (*authdomain.User, error) {
	return sessionUser, nil
}

func (f *fakeAuthUsecase) UpdateCoverImage(_ context.Context, userID, localPath string) (*authdomain.User, error) {
	return sessionUser, nil
}

func (f *fakeAuthUsecase) ValidateAccessToken(token string) (*authdomain.User, error) {
	if token != validAccessToken {
		return nil, assert.AnError
	}
	return sessionUser, nil
}

type fakeChannelUsecase struct{}

func (f *fakeChannelUsecase) GetChannelProfile(username, viewerID string) (*channeldto.ChannelProfile, error) {
	if username != "testuser" {
		return nil, response.NewError(http.StatusNotFound, "channel does not exist")
	}
	return &channeldto.ChannelProfile{
		ID:       sessionUser.ID,
		Username: username,
	}, nil
}

func (f *fakeChannelUsecase) ToggleSubscription(viewerID, channelID string) (bool, error) {
	return true, nil
}

type fakeVideoUsecase struct{}

func (f *fakeVideoUsecase) PublishVideo(_ context.Context, ownerID string, req *videodto.PublishVideoRequest) (*videodomain.Video, error) {
	return &videodomain.Video{ID: "video-1", OwnerID: ownerID, Title: req.Title}, nil
}

func (f *fakeVideoUsecase) GetVideoByID(videoID, viewerID string) (*videodto.VideoWithOwner, error) {
	return nil, response.NewError(http.StatusNotFound, "video does not exist")
}

func (f *fakeVideoUsecase) GetWatchHistory(userID string) ([]videodto.VideoWithOwner, error) {
	return []videodto.VideoWithOwner{}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeAuthUsecase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AccessTokenExpiry:  time.Minute,
		RefreshTokenExpiry: time.Hour,
		TempDir:            t.TempDir(),
	}

	authUc := &fakeAuthUsecase{}
	r := gin.New()
	SetupRoutes(r, authUc, &fakeChannelUsecase{}, &fakeVideoUsecase{}, cfg)
	return r, authUc
}

func doRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentUser_Unauthorized(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestCurrentUser_BearerToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.Header.Set("Authorization", "Bearer "+validAccessToken)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, sessionUser.ID, data["id"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword, "password must never be serialized")
}

func TestCurrentUser_CookieToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: validAccessToken})
	w := doRequest(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentUser_InvalidToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := doRequest(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_SetsCookies(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := `{"username":"testuser","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	var names []string
	for _, c := range cookies {
		names = append(names, c.Name)
		assert.True(t, c.HttpOnly, "auth cookies must be http-only")
		assert.True(t, c.Secure, "auth cookies must be secure")
	}
	assert.Contains(t, names, "accessToken")
	assert.Contains(t, names, "refreshToken")

	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, validAccessToken, data["accessToken"])
	assert.Equal(t, validRefreshToken, data["refreshToken"])
}

func TestLogin_UnknownUser(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := `{"username":"nobody","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(r, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefreshToken_FromCookie(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: validRefreshToken})
	w := doRequest(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "rotated-access-token", data["accessToken"])
	assert.Equal(t, "rotated-refresh-token", data["refreshToken"])
	_, hasUser := data["user"]
	assert.False(t, hasUser, "refresh response carries tokens only")
}

func TestRefreshToken_FromBody(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := `{"refreshToken":"` + validRefreshToken + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshToken_Missing(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken_Superseded(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "stale-token"})
	w := doRequest(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ClearsCookies(t *testing.T) {
	r, authUc := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	req.Header.Set("Authorization", "Bearer "+validAccessToken)
	w := doRequest(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, authUc.loggedOut)

	for _, c := range w.Result().Cookies() {
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 1, "cookies must be expired on logout")
	}
}

func TestChangePassword(t *testing.T) {
	r, authUc := newTestRouter(t)

	payload := `{"oldPassword":"secret123","newPassword":"newsecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/change-password", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+validAccessToken)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, authUc.passwordChanged)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := `{"oldPassword":"wrong","newPassword":"newsecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/change-password", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+validAccessToken)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_MissingAvatar(t *testing.T) {
	r, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("fullName", "Test User"))
	require.NoError(t, mw.WriteField("email", "test@example.com"))
	require.NoError(t, mw.WriteField("username", "testuser"))
	require.NoError(t, mw.WriteField("password", "secret123"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := doRequest(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_Multipart(t *testing.T) {
	r, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("fullName", "Test User"))
	require.NoError(t, mw.WriteField("email", "test@example.com"))
	require.NoError(t, mw.WriteField("username", "testuser"))
	require.NoError(t, mw.WriteField("password", "secret123"))
	avatar, err := mw.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = avatar.Write([]byte("fake-png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := doRequest(r, req)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, float64(http.StatusCreated), body["statusCode"])
	assert.Equal(t, true, body["success"])
}

func TestChannelProfile(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/channel/testuser", nil)
	req.Header.Set("Authorization", "Bearer "+validAccessToken)
	w := doRequest(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "testuser", data["username"])
	assert.Equal(t, float64(0), data["subscribersCount"])
	assert.Equal(t, false, data["isSubscribed"])
}

func TestChannelProfile_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/channel/nobody", nil)
	req.Header.Set("Authorization", "Bearer "+validAccessToken)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWatchHistory_Empty(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/history", nil)
	req.Header.Set("Authorization", "Bearer "+validAccessToken)
	w := doRequest(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	data, ok := body["data"].([]any)
	require.True(t, ok, "history must be a list")
	assert.Empty(t, data)
}

func TestToggleSubscription(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/c/channel-1", nil)
	req.Header.Set("Authorization", "Bearer "+validAccessToken)
	w := doRequest(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["subscribed"])
}

func TestGetVideo_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/missing", nil)
	req.Header.Set("Authorization", "Bearer "+validAccessToken)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
