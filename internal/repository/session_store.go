package repository

import (
    "context"
    "sync"
    "time"

    "github.com/redis/go-redis/v9"
)

// SessionStore keeps the server-side record of admin sessions.  The
// session cookie only carries a signed session id; a session is live only
// while its record exists here, so deleting the record at logout revokes
// the cookie immediately.
type SessionStore interface {
    // Create stores a session id -> username binding with a TTL.
    Create(ctx context.Context, id, username string, ttl time.Duration) error
    // Get returns the username bound to id, or ErrSessionNotFound.
    Get(ctx context.Context, id string) (string, error)
    // Delete removes the session record.  Deleting a missing id is not
    // an error.
    Delete(ctx context.Context, id string) error
}

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps sessions in redis so they survive restarts and
// are shared across instances.  Expiry is delegated to redis TTLs.
type RedisSessionStore struct {
    rdb *redis.Client
}

// NewRedisSessionStore returns a SessionStore backed by the given client.
func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
    return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Create(ctx context.Context, id, username string, ttl time.Duration) error {
    return s.rdb.Set(ctx, sessionKeyPrefix+id, username, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (string, error) {
    v, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Result()
    if err == redis.Nil {
        return "", ErrSessionNotFound
    }
    if err != nil {
        return "", err
    }
    return v, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
    return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

// MemorySessionStore is the in-process fallback used when redis is not
// reachable at startup and in tests.  Sessions are lost on restart.
type MemorySessionStore struct {
    mu       sync.Mutex
    sessions map[string]memorySession
}

type memorySession struct {
    username string
    expires  time.Time
}

// NewMemorySessionStore returns an empty in-process session store.
func NewMemorySessionStore() *MemorySessionStore {
    return &MemorySessionStore{sessions: make(map[string]memorySession)}
}

func (s *MemorySessionStore) Create(ctx context.Context, id, username string, ttl time.Duration) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.sessions[id] = memorySession{username: username, expires: time.Now().UTC().Add(ttl)}
    return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (string, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    sess, ok := s.sessions[id]
    if !ok {
        return "", ErrSessionNotFound
    }
    if time.Now().UTC().After(sess.expires) {
        delete(s.sessions, id)
        return "", ErrSessionNotFound
    }
    return sess.username, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.sessions, id)
    return nil
}
