package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/gin-gonic/gin"
)

var ErrTokenNotExist = errors.New("token not exist")

const CurrentUserKey = "currentUser"

type TokenValidator interface {
	ValidateToken(token string) (*domain.UserClaims, error)
}

// extractToken reads the Authorization header. Both "Bearer <token>" and a bare token are accepted.
func extractToken(c *gin.Context) (string, error) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	const bearer = "Bearer"
	if len(header) >= len(bearer) && strings.EqualFold(header[:len(bearer)], bearer) {
		rest := header[len(bearer):]
		if rest == "" || rest[0] == ' ' {
			header = strings.TrimSpace(rest)
		}
	}
	if header == "" {
		return "", ErrTokenNotExist
	}
	return header, nil
}

// AuthRequired rejects requests without a valid token and stores the caller claims under CurrentUserKey.
func AuthRequired(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "未提供认证信息")
			return
		}

		claims, err := v.ValidateToken(token)
		if err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			msg := "Token 无效"
			if errors.Is(err, domain.ErrTokenExpired) {
				msg = "Token 已过期"
			}
			abortJSON(c, http.StatusUnauthorized, msg)
			return
		}

		c.Set(CurrentUserKey, claims)
		c.Next()
	}
}

// OptionalAuth stores the caller claims when a valid token is present and lets every request through.
func OptionalAuth(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := extractToken(c); err == nil {
			if claims, vErr := v.ValidateToken(token); vErr == nil {
				c.Set(CurrentUserKey, claims)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the claims stored by AuthRequired or OptionalAuth.
func CurrentUser(c *gin.Context) (*domain.UserClaims, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*domain.UserClaims)
	return claims, ok
}
