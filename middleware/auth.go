package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	msgTokenRequired = "Token requerido"
	msgTokenInvalid  = "Token inválido o expirado"

	// UserIDKey holds the authenticated user id on the gin context.
	UserIDKey = "user_id"
)

// TokenValidator checks an access token and returns its claims.
type TokenValidator interface {
	Validate(token string) (jwt.MapClaims, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer" token.
func BearerAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgTokenRequired})
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgTokenInvalid})
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgTokenInvalid})
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set(UserIDKey, sub)
		}
		c.Next()
	}
}
