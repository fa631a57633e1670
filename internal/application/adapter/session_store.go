package adapter

import (
	"context"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// SessionStore keeps in-progress chat sessions with an expiry.
type SessionStore interface {
	// Get returns domainerror.ErrSessionNotFound when the chat has no live session.
	Get(ctx context.Context, chatID string) (*entity.ConversationSession, error)

	// Save stores the session and refreshes its expiry.
	Save(ctx context.Context, session *entity.ConversationSession) error

	Delete(ctx context.Context, chatID string) error
}
