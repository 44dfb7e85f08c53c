// Package presence отслеживает онлайн-статус: пользователь онлайн, пока у него
// есть хотя бы одно живое соединение. Хранилище процесс-локально в memory-варианте;
// redis-вариант пригоден для нескольких инстансов шлюза.
package presence

import (
	"context"

	"github.com/google/uuid"
)

type Store interface {
	// Add регистрирует соединение; first=true, если это первое соединение пользователя
	Add(ctx context.Context, userID, connID uuid.UUID) (first bool, err error)

	// Remove убирает соединение; last=true, если соединений у пользователя не осталось
	Remove(ctx context.Context, userID, connID uuid.UUID) (last bool, err error)

	IsOnline(ctx context.Context, userID uuid.UUID) (bool, error)

	Online(ctx context.Context) ([]uuid.UUID, error)
}
