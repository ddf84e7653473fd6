package tutor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aprenda-ai/tutor/common/logger"
	"github.com/aprenda-ai/tutor/config"
)

// RedisSessionStore persists sessions in Redis.
// Data model:
//   - prefix+"session:"+id => JSON(Session) with TTL
//   - prefix+"idx"         => ZSET of ids scored by last activity
type RedisSessionStore struct {
	rdb      *redis.Client
	prefix   string
	ttl      time.Duration
	maxTurns int
}

func NewRedisSessionStore(cfg config.SessionConfig) (*RedisSessionStore, error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 20
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisSessionStore{rdb: rdb, prefix: "tutor:sess:", ttl: ttl, maxTurns: maxTurns}, nil
}

func (s *RedisSessionStore) idxKey() string           { return s.prefix + "idx" }
func (s *RedisSessionStore) sessKey(id string) string { return s.prefix + "session:" + id }

func (s *RedisSessionStore) Create() *Session {
	sess := &Session{ID: uuid.New().String(), CreatedAt: time.Now(), Messages: []ChatMessage{}}
	s.save(sess)
	return sess
}

func (s *RedisSessionStore) save(sess *Session) {
	ctx := context.Background()
	b, err := json.Marshal(sess)
	if err != nil {
		logger.Errorf("session: marshal %s: %v", sess.ID, err)
		return
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.sessKey(sess.ID), b, s.ttl)
	pipe.ZAdd(ctx, s.idxKey(), redis.Z{Score: float64(time.Now().Unix()), Member: sess.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Errorf("session: save %s: %v", sess.ID, err)
	}
}

func (s *RedisSessionStore) Get(id string) (*Session, bool) {
	b, err := s.rdb.Get(context.Background(), s.sessKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		logger.Errorf("session: unmarshal %s: %v", id, err)
		return nil, false
	}
	return &sess, true
}

func (s *RedisSessionStore) Delete(id string) bool {
	ctx := context.Background()
	pipe := s.rdb.TxPipeline()
	del := pipe.Del(ctx, s.sessKey(id))
	pipe.ZRem(ctx, s.idxKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false
	}
	return del.Val() > 0
}

func (s *RedisSessionStore) AddMessage(id string, msg ChatMessage) bool {
	sess, ok := s.Get(id)
	if !ok {
		return false
	}
	sess.Messages = append(sess.Messages, msg)
	if len(sess.Messages) > s.maxTurns {
		sess.Messages = sess.Messages[len(sess.Messages)-s.maxTurns:]
	}
	s.save(sess)
	return true
}

func (s *RedisSessionStore) ListRange(offset, limit int) []*Session {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []*Session{}
	}
	ctx := context.Background()
	ids, err := s.rdb.ZRevRange(ctx, s.idxKey(), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		logger.Warnf("session: list: %v", err)
		return []*Session{}
	}
	out := make([]*Session, 0, len(ids))
	for _, id := range ids {
		if sess, ok := s.Get(id); ok {
			out = append(out, sess)
		}
	}
	return out
}

func (s *RedisSessionStore) Clean(max int) error {
	if max <= 0 {
		return nil
	}
	ctx := context.Background()
	total, err := s.rdb.ZCard(ctx, s.idxKey()).Result()
	if err != nil || total <= int64(max) {
		return err
	}
	ids, err := s.rdb.ZRange(ctx, s.idxKey(), 0, total-int64(max)-1).Result()
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, s.sessKey(id))
		pipe.ZRem(ctx, s.idxKey(), id)
	}
	_, err = pipe.Exec(ctx)
	return err
}
