package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: Validation("bad input"), want: http.StatusBadRequest},
		{name: "conflict maps to 400", err: Conflict("duplicate"), want: http.StatusBadRequest},
		{name: "authentication", err: Authentication("bad token"), want: http.StatusUnauthorized},
		{name: "authorization", err: Authorization("not yours"), want: http.StatusForbidden},
		{name: "not found", err: NotFound("missing"), want: http.StatusNotFound},
		{name: "internal", err: Internal(errors.New("db down")), want: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("unknown"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("Channel not found")

	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(NotFound(...), ErrNotFound) = false, want true")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("errors.Is(NotFound(...), ErrValidation) = true, want false")
	}
	if err.Error() != "Channel not found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "Channel not found")
	}
}
