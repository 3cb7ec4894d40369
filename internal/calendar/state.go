package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const stateKeyPrefix = "oauth-state::"

var ErrUnknownState = errors.New("unknown or expired oauth state")

// StateStore remembers which user started an OAuth flow. A state can be
// consumed only once.
type StateStore struct {
	rdb     *redis.Client
	ttl     time.Duration
	NewUUID func() string
}

func NewStateStore(rdb *redis.Client, ttl time.Duration) *StateStore {
	return &StateStore{
		rdb:     rdb,
		ttl:     ttl,
		NewUUID: uuid.NewString,
	}
}

func (s *StateStore) NewState(ctx context.Context, userID string) (string, error) {
	state := s.NewUUID()
	if err := s.rdb.Set(ctx, stateKeyPrefix+state, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}
	return state, nil
}

// Consume returns the user the state was issued for and forgets the state.
func (s *StateStore) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ErrUnknownState
	}

	userID, err := s.rdb.GetDel(ctx, stateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrUnknownState
	}
	if err != nil {
		return "", fmt.Errorf("consume oauth state: %w", err)
	}
	return userID, nil
}
