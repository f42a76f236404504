package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"homeBakery/entities"
	"homeBakery/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "cart:"

type SessionRepository interface {
	SetSession(ctx context.Context, sessionId string, state entities.SessionState) (err error)
	GetSession(ctx context.Context, sessionId string) (state entities.SessionState, exists bool, err error)
	// RefreshSession restarts the TTL and reports whether the session exists.
	RefreshSession(ctx context.Context, sessionId string) (exists bool, err error)
}

type RedisSessionRepo struct {
	rdb    *redis.Client
	ttl    time.Duration
	sealer *Sealer
	logger *zap.Logger
}

func NewRedisSessionRepository(ctx context.Context, redis_conn *redis.Client, ttl time.Duration, sealer *Sealer, logger *zap.Logger) (SessionRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}
	return &RedisSessionRepo{
		rdb:    redis_conn,
		ttl:    ttl,
		sealer: sealer,
		logger: logger,
	}, nil
}

func encodeSession(sealer *Sealer, state entities.SessionState) ([]byte, error) {
	jsonData, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return sealer.Seal(jsonData)
}

func decodeSession(sealer *Sealer, blob []byte) (state entities.SessionState, err error) {
	plain, err := sealer.Open(blob)
	if err != nil {
		return
	}
	err = json.Unmarshal(plain, &state)
	return
}

func (s *RedisSessionRepo) SetSession(ctx context.Context, sessionId string, state entities.SessionState) (err error) {
	blob, err := encodeSession(s.sealer, state)
	if err != nil {
		s.logger.Error("encode session", zap.String("session_id", sessionId), zap.Error(err))
		err = models.ErrServerError
		return
	}
	err = s.rdb.Set(ctx, sessionKeyPrefix+sessionId, blob, s.ttl).Err()
	if err != nil {
		s.logger.Error("save session to redis", zap.String("session_id", sessionId), zap.Error(err))
		err = models.ErrServerError
	}
	return
}

func (s *RedisSessionRepo) GetSession(ctx context.Context, sessionId string) (state entities.SessionState, exists bool, err error) {
	val, e := s.rdb.Get(ctx, sessionKeyPrefix+sessionId).Bytes()
	if e != nil {
		if errors.Is(e, redis.Nil) {
			return
		}
		s.logger.Error("read session from redis", zap.String("session_id", sessionId), zap.Error(e))
		err = models.ErrServerError
		return
	}
	state, e = decodeSession(s.sealer, val)
	if e != nil {
		// an unreadable blob (rotated secret, old format) starts a fresh session
		s.logger.Warn("discarding unreadable session", zap.String("session_id", sessionId), zap.Error(e))
		state = entities.SessionState{}
		return
	}
	exists = true
	return
}

func (s *RedisSessionRepo) RefreshSession(ctx context.Context, sessionId string) (exists bool, err error) {
	exists, err = s.rdb.Expire(ctx, sessionKeyPrefix+sessionId, s.ttl).Result()
	if err != nil {
		s.logger.Error("refresh session", zap.String("session_id", sessionId), zap.Error(err))
		err = models.ErrServerError
	}
	return
}

type memSession struct {
	blob    []byte
	expires time.Time
}

// MemorySessionRepo keeps sessions in process memory, for single-instance
// development runs and tests.
type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]memSession
	ttl      time.Duration
	sealer   *Sealer
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration, sealer *Sealer) *MemorySessionRepo {
	return &MemorySessionRepo{
		sessions: make(map[string]memSession),
		ttl:      ttl,
		sealer:   sealer,
		now:      time.Now,
	}
}

func (m *MemorySessionRepo) SetSession(_ context.Context, sessionId string, state entities.SessionState) (err error) {
	blob, err := encodeSession(m.sealer, state)
	if err != nil {
		err = models.ErrServerError
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionId] = memSession{blob: blob, expires: m.now().Add(m.ttl)}
	return
}

// live returns the stored session, evicting it when expired. m.mu must be held.
func (m *MemorySessionRepo) live(sessionId string) (sess memSession, ok bool) {
	sess, ok = m.sessions[sessionId]
	if ok && m.now().After(sess.expires) {
		delete(m.sessions, sessionId)
		ok = false
	}
	return
}

func (m *MemorySessionRepo) GetSession(_ context.Context, sessionId string) (state entities.SessionState, exists bool, err error) {
	m.mu.Lock()
	sess, ok := m.live(sessionId)
	m.mu.Unlock()
	if !ok {
		return
	}
	state, err = decodeSession(m.sealer, sess.blob)
	if err != nil {
		state, err = entities.SessionState{}, nil
		return
	}
	exists = true
	return
}

func (m *MemorySessionRepo) RefreshSession(_ context.Context, sessionId string) (exists bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.live(sessionId)
	if !ok {
		return
	}
	sess.expires = m.now().Add(m.ttl)
	m.sessions[sessionId] = sess
	exists = true
	return
}
