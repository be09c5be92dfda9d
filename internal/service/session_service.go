package service

import (
	"context"
	"encoding/json"
	"time"

	"testhub_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "sess:"

// Session mirrors the token identity server-side for cookie-based access.
type Session struct {
	ID      string         `json:"id"`
	UserID  uint           `json:"userId"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Role    model.UserRole `json:"role"`
	IsAdmin bool           `json:"isAdmin"`
}

type SessionService struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewSessionService(rdb *redis.Client, ttl time.Duration) *SessionService {
	return &SessionService{Redis: rdb, TTL: ttl}
}

func (s *SessionService) Create(ctx context.Context, user *model.User) (*Session, error) {
	sess := &Session{
		ID:      uuid.New().String(),
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		IsAdmin: user.IsAdmin(),
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}

	if err := s.Redis.Set(ctx, sessionKeyPrefix+sess.ID, raw, s.TTL).Err(); err != nil {
		return nil, err
	}

	return sess, nil
}

// Get returns nil without error for unknown or expired sessions; callers
// treat that as an anonymous request.
func (s *SessionService) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}

	raw, err := s.Redis.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionService) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.Redis.Del(ctx, sessionKeyPrefix+id).Err()
}
