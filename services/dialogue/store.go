// File: services/dialogue/store.go
package dialogue

import (
	"context"
	"encoding/json"
	"time"

	"locali/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "dialogue:session:"

// SessionStore persists dialogue snapshots between process restarts.
type SessionStore interface {
	Load(ctx context.Context, id string) (*models.DialogueSnapshot, error)
	Save(ctx context.Context, snap models.DialogueSnapshot) error
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps snapshots as JSON strings with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Load returns nil without error when no snapshot exists.
func (s *RedisSessionStore) Load(ctx context.Context, id string) (*models.DialogueSnapshot, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.DialogueSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, snap models.DialogueSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+snap.ID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}
