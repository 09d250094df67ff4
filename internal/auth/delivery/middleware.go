package delivery

import (
	"net/http"
	"strings"

	authdomain "vidtube-backend/internal/auth/domain"
	"vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the access token from the accessToken cookie or
// the Authorization header and attaches the resolved user to the context.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("accessToken")
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.AbortFail(c, response.NewError(http.StatusUnauthorized, "unauthorized request"))
				return
			}
			token = parts[1]
		}

		user, err := authUsecase.ValidateAccessToken(token)
		if err != nil {
			response.AbortFail(c, response.NewError(http.StatusUnauthorized, "invalid or expired access token"))
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// SessionUser returns the user attached by AuthMiddleware.
func SessionUser(c *gin.Context) *authdomain.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := v.(*authdomain.User)
	return user
}
