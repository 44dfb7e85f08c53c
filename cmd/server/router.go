package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/teamchat/internal/database"
	"github.com/thereayou/teamchat/internal/handlers"
	"github.com/thereayou/teamchat/internal/middleware"
	"github.com/thereayou/teamchat/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	db *database.Database,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	channelH *handlers.ChannelHandler,
	messageH *handlers.MessageHandler,
	wsH *handlers.WebSocketHandler,
) {
	authRequired := middleware.AuthMiddleware(jwtMgr, db, rdb)

	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", authH.Signup)
		authGroup.POST("/login", authH.Login)
		authGroup.GET("/me", authRequired, authH.Me)
		authGroup.POST("/logout", authRequired, authH.Logout)
	}

	// Channel endpoints
	channels := r.Group("/channels", authRequired)
	{
		channels.POST("", channelH.CreateChannel)
		channels.GET("", channelH.GetChannels)
		channels.POST("/:id/join", channelH.JoinChannel)
		channels.POST("/:id/leave", channelH.LeaveChannel)
	}

	// Message endpoints
	messages := r.Group("/messages", authRequired)
	{
		messages.GET("/:channelId", messageH.GetMessages)
		messages.DELETE("/:messageId", messageH.DeleteMessage)
	}

	// Realtime gateway
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, db, rdb), wsH.HandleWebSocket)
}
