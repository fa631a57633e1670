// Package cache provides Redis-backed storage for short-lived state.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

const sessionKeyPrefix = "conversation:session:"

// sessionStore implements the adapter.SessionStore interface.
type sessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a session store that expires idle sessions after ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration) adapter.SessionStore {
	return &sessionStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(chatID string) string {
	return sessionKeyPrefix + chatID
}

func (s *sessionStore) Get(ctx context.Context, chatID string) (*entity.ConversationSession, error) {
	data, err := s.client.Get(ctx, sessionKey(chatID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session entity.ConversationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *sessionStore) Save(ctx context.Context, session *entity.ConversationSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ChatID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, chatID string) error {
	if err := s.client.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// NewClient parses a redis:// URL and returns a connected client.
func NewClient(ctx context.Context, url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
