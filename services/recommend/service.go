package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	eventRepo "locali/database/repository/event"
	userRepo "locali/database/repository/user"
	"locali/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cachePrefix = "recommend:"

// RecommendService returns events matched to a member's interests.
type RecommendService interface {
	Recommend(ctx context.Context, userID string, limit int) ([]models.ScoredEvent, error)
	Invalidate(ctx context.Context, userID string) error
}

// DefaultRecommendService ranks the full catalogue and caches results per member in a Redis hash
// keyed by limit, so a profile change clears every cached size at once.
type DefaultRecommendService struct {
	Events eventRepo.EventRepository
	Users  userRepo.UserRepository
	Cache  *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func (s *DefaultRecommendService) Recommend(ctx context.Context, userID string, limit int) ([]models.ScoredEvent, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	key := cachePrefix + userID
	field := strconv.Itoa(limit)

	if s.Cache != nil {
		data, err := s.Cache.HGet(ctx, key, field).Result()
		if err == nil {
			var cached []models.ScoredEvent
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.Logger.Warn("recommendation cache read failed", zap.String("userID", userID), zap.Error(err))
		}
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recommend: load user %s: %w", userID, err)
	}
	if len(user.Interests) == 0 {
		return []models.ScoredEvent{}, nil
	}
	events, err := s.Events.List(ctx, eventRepo.Query{})
	if err != nil {
		return nil, fmt.Errorf("recommend: list events: %w", err)
	}
	ranked := Rank(events, user.Interests, limit)

	if s.Cache != nil {
		if b, err := json.Marshal(ranked); err == nil {
			pipe := s.Cache.TxPipeline()
			pipe.HSet(ctx, key, field, b)
			pipe.Expire(ctx, key, s.TTL)
			if _, err := pipe.Exec(ctx); err != nil {
				s.Logger.Warn("recommendation cache write failed", zap.String("userID", userID), zap.Error(err))
			}
		}
	}
	return ranked, nil
}

// Invalidate drops cached recommendations for the member.
func (s *DefaultRecommendService) Invalidate(ctx context.Context, userID string) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Del(ctx, cachePrefix+userID).Err()
}
