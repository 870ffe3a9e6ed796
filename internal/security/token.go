package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/ecommerce-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenManager struct {
	key    []byte
	expiry time.Duration
}

func NewTokenManager(key []byte, expiry time.Duration) *TokenManager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	return &TokenManager{key: key, expiry: expiry}
}

func (m *TokenManager) Expiry() time.Duration {
	return m.expiry
}

// Issue signs an HS256 token whose subject is the username.
func (m *TokenManager) Issue(principal *models.Principal) (string, *models.Claims, error) {
	now := time.Now()

	claims := &models.Claims{
		UserID:   principal.UserID,
		Username: principal.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Username,
			ID:        strconv.FormatInt(principal.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, claims, nil
}

func (m *TokenManager) Parse(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
