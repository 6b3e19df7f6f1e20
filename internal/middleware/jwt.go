package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTMiddleware guards routes behind a Bearer access token and puts the
// subject under "user_id" in the request context.
func JWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization required"})
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header"})
			return
		}
		tok, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		claims := tok.Claims.(jwt.MapClaims)
		if claims["typ"] != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not an access token"})
			return
		}
		// sub comes back as float64 after JSON decoding
		switch v := claims["sub"].(type) {
		case float64:
			c.Set("user_id", uint(v))
		case int:
			c.Set("user_id", uint(v))
		case int64:
			c.Set("user_id", uint(v))
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token subject"})
			return
		}
		c.Next()
	}
}
