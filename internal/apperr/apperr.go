// Package apperr задаёт таксономию ошибок приложения и их отображение в HTTP-статусы.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication error")
	ErrAuthorization  = errors.New("authorization error")
	ErrNotFound       = errors.New("not found")
	ErrInternal       = errors.New("internal error")
)

type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func Validation(msg string) error     { return &Error{kind: ErrValidation, msg: msg} }
func Conflict(msg string) error       { return &Error{kind: ErrConflict, msg: msg} }
func Authentication(msg string) error { return &Error{kind: ErrAuthentication, msg: msg} }
func Authorization(msg string) error  { return &Error{kind: ErrAuthorization, msg: msg} }
func NotFound(msg string) error       { return &Error{kind: ErrNotFound, msg: msg} }

func Internal(err error) error {
	return &Error{kind: ErrInternal, msg: fmt.Sprintf("internal: %v", err)}
}

// HTTPStatus отображает ошибку таксономии в статус ответа.
// Conflict намеренно отдаётся как 400 — так отвечал исходный API.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// JSON пишет ошибку в ответ; внутренние детали наружу не уходят
func JSON(c *gin.Context, err error) {
	status := HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Server error"
	}
	c.JSON(status, gin.H{"message": msg})
}
