package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/KingGimer44/VideoJuego/models"

	"github.com/golang-jwt/jwt/v4"
)

// TokenIssuer issues access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// TokenService is responsible for creating and validating JWTs.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secretKey: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed HS256 access token for user.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"typ":   "access",
		"exp":   now.Add(s.ttl).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenStr and returns its claims when it is a valid,
// unexpired access token.
func (s *TokenService) Validate(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if typ, ok := claims["typ"].(string); !ok || typ != "access" {
		return nil, fmt.Errorf("invalid token type")
	}
	if sub, ok := claims["sub"].(string); !ok || sub == "" {
		return nil, fmt.Errorf("invalid token subject")
	}
	return claims, nil
}
