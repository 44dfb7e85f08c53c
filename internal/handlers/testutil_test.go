package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/teamchat/internal/database"
	"github.com/thereayou/teamchat/internal/handlers/dto"
	"github.com/thereayou/teamchat/internal/middleware"
	"github.com/thereayou/teamchat/internal/presence"
	ws "github.com/thereayou/teamchat/internal/websocket"
	"github.com/thereayou/teamchat/pkg/auth"
)

type testEnv struct {
	router *gin.Engine
	db     *database.Database
	jwt    *auth.JWTManager
	hub    *ws.Hub
}

// newTestEnv собирает полный сервер на sqlite в памяти, без Redis
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := database.NewDatabase(gormDB)
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)

	hub := ws.NewHub(presence.NewMemoryStore(), db)
	go hub.Run()
	t.Cleanup(hub.Stop)

	authH := NewAuthHandler(db, jwtMgr, nil)
	channelH := NewChannelHandler(db)
	messageH := NewMessageHandler(db)
	socketEvents := NewSocketEventHandler(db, hub)
	wsH := NewWebSocketHandler(hub, socketEvents, nil)

	authRequired := middleware.AuthMiddleware(jwtMgr, db, nil)

	router := gin.New()

	authGroup := router.Group("/auth")
	authGroup.POST("/signup", authH.Signup)
	authGroup.POST("/login", authH.Login)
	authGroup.GET("/me", authRequired, authH.Me)
	authGroup.POST("/logout", authRequired, authH.Logout)

	channels := router.Group("/channels", authRequired)
	channels.POST("", channelH.CreateChannel)
	channels.GET("", channelH.GetChannels)
	channels.POST("/:id/join", channelH.JoinChannel)
	channels.POST("/:id/leave", channelH.LeaveChannel)

	messages := router.Group("/messages", authRequired)
	messages.GET("/:channelId", messageH.GetMessages)
	messages.DELETE("/:messageId", messageH.DeleteMessage)

	router.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, db, nil), wsH.HandleWebSocket)

	return &testEnv{router: router, db: db, jwt: jwtMgr, hub: hub}
}

// doJSON выполняет запрос к собранному роутеру и возвращает статус и распарсенное тело
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			// Тело может быть массивом — тогда вызывающий разбирает сырые байты сам
			parsed = nil
		}
	}

	return w.Code, parsed
}

// signupUser регистрирует пользователя через API и возвращает ответ с токеном
func (e *testEnv) signupUser(t *testing.T, name, email string) dto.AuthResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(mustMarshal(t, map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup for %s failed with status %d: %s", email, w.Code, w.Body.String())
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse auth response: %v", err)
	}
	return resp
}

// remarshal перегоняет распарсенную map в типизированную структуру
func remarshal(in interface{}, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}
