package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/recipehub/config"
	"github.com/d60-Lab/recipehub/internal/model"
	"github.com/d60-Lab/recipehub/internal/repository"
	"github.com/d60-Lab/recipehub/pkg/response"
)

const userKey = "currentUser"

// Auth resolves the bearer token into the requesting user and stores it
// on the context. With required=false an absent or invalid token leaves
// the request anonymous instead of rejecting it.
func Auth(cfg *config.Config, userRepo repository.UserRepository, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolve(c, cfg, userRepo)
		if user == nil && required {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		if user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

func resolve(c *gin.Context, cfg *config.Config, userRepo repository.UserRepository) *model.User {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil
	}
	user, err := userRepo.GetByID(c.Request.Context(), claims.Subject)
	if err != nil {
		return nil
	}
	return user
}

// CurrentUser returns the authenticated user or nil for anonymous
// requests. Handlers pass it down explicitly.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}
