package presence

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	onlineSetKey = "presence:online"
	userConnsKey = "presence:conns:"
)

// RedisStore хранит соединения пользователя в redis-множестве,
// общий набор онлайн-пользователей — в presence:online
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Add(ctx context.Context, userID, connID uuid.UUID) (bool, error) {
	key := userConnsKey + userID.String()

	added, err := s.rdb.SAdd(ctx, key, connID.String()).Result()
	if err != nil {
		return false, err
	}

	count, err := s.rdb.SCard(ctx, key).Result()
	if err != nil {
		return false, err
	}

	if err := s.rdb.SAdd(ctx, onlineSetKey, userID.String()).Err(); err != nil {
		return false, err
	}

	return added == 1 && count == 1, nil
}

func (s *RedisStore) Remove(ctx context.Context, userID, connID uuid.UUID) (bool, error) {
	key := userConnsKey + userID.String()

	if err := s.rdb.SRem(ctx, key, connID.String()).Err(); err != nil {
		return false, err
	}

	count, err := s.rdb.SCard(ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count > 0 {
		return false, nil
	}

	if err := s.rdb.SRem(ctx, onlineSetKey, userID.String()).Err(); err != nil {
		return false, err
	}

	return true, nil
}

func (s *RedisStore) IsOnline(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.rdb.SIsMember(ctx, onlineSetKey, userID.String()).Result()
}

func (s *RedisStore) Online(ctx context.Context) ([]uuid.UUID, error) {
	members, err := s.rdb.SMembers(ctx, onlineSetKey).Result()
	if err != nil {
		return nil, err
	}

	users := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		users = append(users, id)
	}
	return users, nil
}
