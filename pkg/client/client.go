// Package client — сессионный слой для потребителей API: держит токен,
// гидрирует текущего пользователя и открывает realtime-соединение.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Online    bool      `json:"online"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Signup регистрирует пользователя и сохраняет выданный токен в клиенте
func (c *Client) Signup(name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.post("/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, http.StatusCreated, &resp)
	if err != nil {
		return nil, err
	}

	c.Token = resp.Token
	return &resp, nil
}

func (c *Client) Login(email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.post("/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, http.StatusOK, &resp)
	if err != nil {
		return nil, err
	}

	c.Token = resp.Token
	return &resp, nil
}

// Me гидрирует текущего пользователя по сохранённому токену
func (c *Client) Me() (*User, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	httpResp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth/me: unexpected status %d", httpResp.StatusCode)
	}

	var resp struct {
		User User `json:"user"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) post(path string, body interface{}, wantStatus int, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	httpResp, err := c.HTTPClient.Post(c.BaseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != wantStatus {
		var apiErr struct {
			Message string `json:"message"`
		}
		json.NewDecoder(httpResp.Body).Decode(&apiErr)
		return fmt.Errorf("%s: %s (status %d)", path, apiErr.Message, httpResp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(httpResp.Body).Decode(out)
	}
	return nil
}
