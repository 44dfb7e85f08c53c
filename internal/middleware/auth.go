package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/teamchat/internal/database"
	"github.com/thereayou/teamchat/pkg/auth"
)

const UserKey = "currentUser"

// AuthMiddleware проверяет bearer-токен и кладёт живого пользователя в контекст запроса
func AuthMiddleware(jwtManager *auth.JWTManager, db *database.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			c.Abort()
			return
		}

		resolveUser(c, token, jwtManager, db, redisClient)
	}
}

// WSAuthMiddleware — вариант для websocket-рукопожатия: токен берётся
// из query-параметра или из Authorization header
func WSAuthMiddleware(jwtManager *auth.JWTManager, db *database.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				token = parts[1]
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			c.Abort()
			return
		}

		resolveUser(c, token, jwtManager, db, redisClient)
	}
}

func resolveUser(c *gin.Context, token string, jwtManager *auth.JWTManager, db *database.Database, redisClient *redis.Client) {
	if redisClient != nil {
		exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
		if err == nil && exists > 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}
	}

	userID, err := jwtManager.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		c.Abort()
		return
	}

	user, err := db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
		c.Abort()
		return
	}

	c.Set(UserKey, user)
	c.Next()
}
