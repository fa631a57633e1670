package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConversationStep is the position of a chat session in the transaction entry flow.
type ConversationStep string

const (
	StepAwaitingDescription  ConversationStep = "awaiting_description"
	StepAwaitingAmount       ConversationStep = "awaiting_amount"
	StepAwaitingCategory     ConversationStep = "awaiting_category"
	StepAwaitingConfirmation ConversationStep = "awaiting_confirmation"
	StepIdle                 ConversationStep = "idle"
)

// TransactionDraft accumulates the answers given during a conversation.
type TransactionDraft struct {
	Description  string          `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type,omitempty"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
}

// ConversationSession is the in-progress entry state of one chat.
// Sessions live in an expiring store and are dropped on completion or cancel.
type ConversationSession struct {
	ChatID    string           `json:"chat_id"`
	UserID    uuid.UUID        `json:"user_id"`
	Step      ConversationStep `json:"step"`
	Draft     TransactionDraft `json:"draft"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewConversationSession starts a session waiting for the transaction description.
func NewConversationSession(chatID string, userID uuid.UUID) *ConversationSession {
	return &ConversationSession{
		ChatID:    chatID,
		UserID:    userID,
		Step:      StepAwaitingDescription,
		UpdatedAt: time.Now().UTC(),
	}
}

// Advance moves the session to the given step.
func (s *ConversationSession) Advance(step ConversationStep) {
	s.Step = step
	s.UpdatedAt = time.Now().UTC()
}
