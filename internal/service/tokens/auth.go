package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var validMethods = []string{jwt.SigningMethodHS256.Alg()}

// Claims is the token payload: the user identity next to the registered exp/iat claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"id"`
	Account  string `json:"account"`
	Username string `json:"username"`
}

// Manager issues and checks HS256 bearer tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// Generate signs a token for user valid for the manager lifetime.
func (m *Manager) Generate(user domain.UserClaims) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID:   user.ID,
		Account:  user.Account,
		Username: user.Username,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("generating jwt token: %s", err.Error())
	}
	return token, nil
}

// Validate returns the identity of a valid token. Expired tokens yield domain.ErrTokenExpired, anything
// else that fails to parse or verify yields domain.ErrTokenInvalid.
func (m *Manager) Validate(tokenString string) (*domain.UserClaims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("validating jwt token: %w", domain.ErrTokenExpired)
		}
		return nil, fmt.Errorf("validating jwt token: %w: %s", domain.ErrTokenInvalid, err.Error())
	}
	return claims.user(), nil
}

// Refresh re-issues a correctly signed token with a fresh lifetime. The old token may already be expired.
func (m *Manager) Refresh(tokenString string) (string, error) {
	claims, err := m.parse(tokenString, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", fmt.Errorf("refreshing jwt token: %w: %s", domain.ErrTokenInvalid, err.Error())
	}
	return m.Generate(*claims.user())
}

func (m *Manager) parse(tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	if tokenString == "" {
		return nil, jwt.ErrTokenMalformed
	}
	opts = append(opts, jwt.WithValidMethods(validMethods))

	var claims Claims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &claims, nil
}

func (c *Claims) user() *domain.UserClaims {
	return &domain.UserClaims{
		ID:       c.UserID,
		Account:  c.Account,
		Username: c.Username,
	}
}
