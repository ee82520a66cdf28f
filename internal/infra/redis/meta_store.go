package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"quizpulse/internal/domain"
)

// MetaStore keeps the per-question {points, duration} cache in Redis so a
// player's meta survives client restarts within a session. Keys are
// namespaced per player and expire with the TTL; an ended session's meta
// has no value once results were rendered.
type MetaStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewMetaStore(client *redis.Client, playerID string, ttl time.Duration) *MetaStore {
	return &MetaStore{client: client, prefix: "quizpulse:meta:" + playerID, ttl: ttl}
}

func (s *MetaStore) Set(questionID int, meta domain.QuestionMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), s.key(questionID), data, s.ttl).Err()
}

func (s *MetaStore) Get(questionID int) (domain.QuestionMeta, bool, error) {
	data, err := s.client.Get(context.Background(), s.key(questionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.QuestionMeta{}, false, nil
	}
	if err != nil {
		return domain.QuestionMeta{}, false, err
	}
	var meta domain.QuestionMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.QuestionMeta{}, false, err
	}
	return meta, true, nil
}

func (s *MetaStore) key(questionID int) string {
	return s.prefix + ":question:" + strconv.Itoa(questionID)
}
