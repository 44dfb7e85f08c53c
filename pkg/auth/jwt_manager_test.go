package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.Generate(userID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	got, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got != userID {
		t.Errorf("Verify() = %s, want %s", got, userID)
	}
}

func TestVerifyFailures(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	valid, err := manager.Generate(userID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	expiredManager := NewJWTManager("test-secret", -time.Minute)
	expired, err := expiredManager.Generate(userID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	otherSecret, err := NewJWTManager("other-secret", time.Hour).Generate(userID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not-a-jwt"},
		{name: "empty", token: ""},
		{name: "expired", token: expired},
		{name: "wrong secret", token: otherSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Verify(tt.token); err == nil {
				t.Error("Verify() error = nil, want error")
			}
		})
	}

	// Валидный токен после всех проверок остаётся валидным
	if _, err := manager.Verify(valid); err != nil {
		t.Errorf("Verify(valid) error = %v", err)
	}
}

func TestExpiry(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(uuid.New())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	exp, err := manager.Expiry(token)
	if err != nil {
		t.Fatalf("Expiry() error = %v", err)
	}

	until := time.Until(exp)
	if until < 55*time.Minute || until > 65*time.Minute {
		t.Errorf("Expiry() in %v, want about an hour", until)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase bearer", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", wantErr: true},
		{name: "no scheme", header: "abc123", wantErr: true},
		{name: "wrong scheme", header: "Basic abc123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, err := ExtractTokenFromHeader(req)
			if tt.wantErr {
				if err == nil {
					t.Error("ExtractTokenFromHeader() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractTokenFromHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractTokenFromHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}
