package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func recordKey(sid string) string { return "session:user:" + sid }
func flowKey(sid string) string   { return "session:flow:" + sid }

// RedisStore persists session records and flow snapshots as JSON values
// with a sliding TTL.
type RedisStore struct {
	rdb     *redis.Client
	ttl     time.Duration
	flowTTL time.Duration
	logger  *logrus.Logger
}

func NewRedisStore(rdb *redis.Client, ttl, flowTTL time.Duration, logger *logrus.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, flowTTL: flowTTL, logger: logger}
}

func (s *RedisStore) Save(ctx context.Context, sid string, rec *Record) error {
	return s.setJSON(ctx, recordKey(sid), rec, s.ttl)
}

func (s *RedisStore) Load(ctx context.Context, sid string) (*Record, error) {
	var rec Record
	ok, err := s.getJSON(ctx, recordKey(sid), &rec)
	if err != nil || !ok {
		return nil, err
	}
	return &rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, recordKey(sid)).Err()
}

func (s *RedisStore) SaveFlow(ctx context.Context, sid string, snap *FlowSnapshot) error {
	return s.setJSON(ctx, flowKey(sid), snap, s.flowTTL)
}

func (s *RedisStore) LoadFlow(ctx context.Context, sid string) (*FlowSnapshot, error) {
	var snap FlowSnapshot
	ok, err := s.getJSON(ctx, flowKey(sid), &snap)
	if err != nil || !ok {
		return nil, err
	}
	return &snap, nil
}

func (s *RedisStore) DeleteFlow(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, flowKey(sid)).Err()
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, ttl).Err()
}

// getJSON reports (false, nil) for both a missing key and an undecodable
// value; the broken value is deleted so the next read is clean.
func (s *RedisStore) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("key", key).Warn("discarding corrupted session value")
		}
		_ = s.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

var (
	_ Store     = (*RedisStore)(nil)
	_ FlowStore = (*RedisStore)(nil)
)
