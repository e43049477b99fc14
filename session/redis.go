package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"plantdesk/models"
)

const (
	sessionKeyPrefix = "session:"
	userIndexPrefix  = "user_sessions:"

	redisOpTimeout = 5 * time.Second
)

// OpenRedisPool initializes a Redis connection pool
func OpenRedisPool(dsn string) *redis.Client {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		log.Fatalf("Failed to parse Redis DSN: %v", err)
	}

	// Configure connection pooling
	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis db 0: %v", err)
	}

	return client
}

// RedisStore persists sessions in Redis, one JSON record per session under
// session:<id> with a TTL, plus a user_sessions:<userID> index set so all of
// a user's sessions can be found and revoked together.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. ttl bounds how long a record may
// sit in Redis without a write; every Put restarts it, so it is a backstop
// behind the Manager's idle timeout, not an absolute session lifetime.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	sess := &models.Session{}
	if err := json.Unmarshal([]byte(raw), sess); err != nil {
		return nil, fmt.Errorf("corrupt session record: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Put(ctx context.Context, sess *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+sess.SessionID, raw, s.ttl)
	pipe.SAdd(ctx, userIndexPrefix+strconv.Itoa(sess.UserID), sess.SessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Delete removes a single session and its reference in the user index.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	// Look up the owner so the index entry can be cleaned up too. A missing
	// record still counts as a successful delete.
	sess, err := s.Get(ctx, sessionID)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.SRem(ctx, userIndexPrefix+strconv.Itoa(sess.UserID), sessionID)
	pipe.Del(ctx, sessionKeyPrefix+sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every session associated with a user, e.g. when an
// account is disabled.
func (s *RedisStore) DeleteAllForUser(ctx context.Context, userID int) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	indexKey := userIndexPrefix + strconv.Itoa(userID)
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	if len(ids) > 0 {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = sessionKeyPrefix + id
		}
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("delete user sessions: %w", err)
		}
	}

	return s.client.Del(ctx, indexKey).Err()
}

// CountForUser returns the number of live sessions held by a user.
func (s *RedisStore) CountForUser(ctx context.Context, userID int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	n, err := s.client.SCard(ctx, userIndexPrefix+strconv.Itoa(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("count user sessions: %w", err)
	}
	return n, nil
}
