package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChannel(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signupUser(t, "alice", "alice@example.com")

	t.Run("creator auto-joins", func(t *testing.T) {
		status, body := env.doJSON(t, http.MethodPost, "/channels", alice.Token, map[string]string{
			"name":        "general",
			"description": "company wide",
		})
		require.Equal(t, http.StatusCreated, status)

		assert.Equal(t, "general", body["name"])
		createdBy := body["createdBy"].(map[string]interface{})
		assert.Equal(t, "alice", createdBy["name"])

		members := body["members"].([]interface{})
		require.Len(t, members, 1)
		assert.Equal(t, alice.User.ID.String(), members[0])
	})

	t.Run("empty name rejected", func(t *testing.T) {
		status, _ := env.doJSON(t, http.MethodPost, "/channels", alice.Token, map[string]string{
			"name": "",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		status, body := env.doJSON(t, http.MethodPost, "/channels", alice.Token, map[string]string{
			"name": "general",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Channel name already exists", body["message"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		status, _ := env.doJSON(t, http.MethodPost, "/channels", "", map[string]string{
			"name": "private",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestGetChannels(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signupUser(t, "alice", "alice@example.com")

	for _, name := range []string{"general", "random"} {
		status, _ := env.doJSON(t, http.MethodPost, "/channels", alice.Token, map[string]string{"name": name})
		require.Equal(t, http.StatusCreated, status)
	}

	req := httptest.NewRequest(http.MethodGet, "/channels", nil)
	req.Header.Set("Authorization", "Bearer "+alice.Token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var channels []struct {
		Name      string `json:"name"`
		CreatedBy struct {
			Name string `json:"name"`
		} `json:"createdBy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &channels))
	require.Len(t, channels, 2)
	// Создатель должен быть разрешён в отображаемое имя
	for _, ch := range channels {
		assert.Equal(t, "alice", ch.CreatedBy.Name)
	}
}

func TestJoinChannelIdempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signupUser(t, "alice", "alice@example.com")
	bob := env.signupUser(t, "bob", "bob@example.com")

	_, created := env.doJSON(t, http.MethodPost, "/channels", alice.Token, map[string]string{"name": "general"})
	channelID := created["_id"].(string)

	memberCount := func(body map[string]interface{}) int {
		channel := body["channel"].(map[string]interface{})
		return len(channel["members"].([]interface{}))
	}

	status, body := env.doJSON(t, http.MethodPost, "/channels/"+channelID+"/join", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Joined channel", body["message"])
	assert.Equal(t, 2, memberCount(body))

	// Повторное вступление — no-op, состав участников не меняется
	status, body = env.doJSON(t, http.MethodPost, "/channels/"+channelID+"/join", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, memberCount(body))

	t.Run("unknown channel", func(t *testing.T) {
		status, _ := env.doJSON(t, http.MethodPost, "/channels/"+uuid.NewString()+"/join", bob.Token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestLeaveChannelIdempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signupUser(t, "alice", "alice@example.com")
	bob := env.signupUser(t, "bob", "bob@example.com")

	_, created := env.doJSON(t, http.MethodPost, "/channels", alice.Token, map[string]string{"name": "general"})
	channelID := created["_id"].(string)

	status, _ := env.doJSON(t, http.MethodPost, "/channels/"+channelID+"/join", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := env.doJSON(t, http.MethodPost, "/channels/"+channelID+"/leave", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Left channel", body["message"])
	channel := body["channel"].(map[string]interface{})
	assert.Len(t, channel["members"].([]interface{}), 1)

	// Выход не-участника — успех, не ошибка
	status, body = env.doJSON(t, http.MethodPost, "/channels/"+channelID+"/leave", bob.Token, nil)
	require.Equal(t, http.StatusOK, status)
	channel = body["channel"].(map[string]interface{})
	assert.Len(t, channel["members"].([]interface{}), 1)

	t.Run("unknown channel", func(t *testing.T) {
		status, _ := env.doJSON(t, http.MethodPost, "/channels/"+uuid.NewString()+"/leave", bob.Token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}
