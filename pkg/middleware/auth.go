package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIdKey = "userId"

// TokenParser валидирует access-токен и возвращает id пользователя
type TokenParser interface {
	ParseToken(accessToken string) (int64, error)
}

func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header"})
			return
		}

		userId, err := parser.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(userIdKey, userId)
		c.Next()
	}
}

// GetUserId достаёт id пользователя, положенный AuthMiddleware
func GetUserId(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIdKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
