package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/teamchat/internal/apperr"
	"github.com/thereayou/teamchat/internal/database"
	"github.com/thereayou/teamchat/internal/handlers/dto"
	"github.com/thereayou/teamchat/internal/middleware"
	"github.com/thereayou/teamchat/internal/models"
	"github.com/thereayou/teamchat/pkg/auth"
)

type AuthHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	redis      *redis.Client
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{db: db, jwtManager: jwtMgr, redis: rdb}
}

// Signup создаёт пользователя и сразу выдаёт сессионный токен
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.JSON(c, apperr.Validation("Name, email and password are required"))
		return
	}

	if existing, _ := h.db.FindUserByEmail(req.Email); existing != nil {
		apperr.JSON(c, apperr.Conflict("Email already registered"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.JSON(c, apperr.Internal(err))
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}

	if err := h.db.SaveUser(user); err != nil {
		apperr.JSON(c, apperr.Conflict("Email already registered"))
		return
	}

	token, err := h.jwtManager.Generate(user.ID)
	if err != nil {
		apperr.JSON(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.JSON(c, apperr.Validation("Email and password are required"))
		return
	}

	user, err := h.db.FindUserByEmail(req.Email)
	if err != nil {
		apperr.JSON(c, apperr.Authentication("Invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		apperr.JSON(c, apperr.Authentication("Invalid credentials"))
		return
	}

	token, err := h.jwtManager.Generate(user.ID)
	if err != nil {
		apperr.JSON(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: token,
	})
}

// Me возвращает текущего пользователя, разрешённого из токена
func (h *AuthHandler) Me(c *gin.Context) {
	user := c.MustGet(middleware.UserKey).(*models.User)

	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}

// Logout ставит токен в черный список в Redis до истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		apperr.JSON(c, apperr.Validation(err.Error()))
		return
	}

	if h.redis != nil {
		exp, err := h.jwtManager.Expiry(rawToken)
		if err != nil {
			apperr.JSON(c, apperr.Authentication("Invalid or expired token"))
			return
		}
		h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, time.Until(exp))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
