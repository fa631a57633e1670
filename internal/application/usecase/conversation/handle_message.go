// Package conversation contains the chat-driven transaction entry use case.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/application/usecase/transaction"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

const (
	commandAdd    = "/add"
	commandCancel = "/cancel"
	answerSkip    = "skip"
)

// TransactionCreator creates the transaction once the user confirms the draft.
type TransactionCreator interface {
	Execute(ctx context.Context, input transaction.CreateTransactionInput) (*transaction.CreateTransactionOutput, error)
}

// HandleMessageInput is one chat message.
type HandleMessageInput struct {
	ChatID string
	UserID uuid.UUID
	Text   string
}

// HandleMessageOutput is the reply to send back and the step the session is now in.
type HandleMessageOutput struct {
	Reply         string
	Step          entity.ConversationStep
	TransactionID *uuid.UUID
}

// HandleMessageUseCase drives the /add flow: description, amount, category, confirmation.
type HandleMessageUseCase struct {
	sessions     adapter.SessionStore
	categoryRepo adapter.CategoryRepository
	creator      TransactionCreator
	clock        adapter.Clock
}

// NewHandleMessageUseCase creates a new HandleMessageUseCase instance.
func NewHandleMessageUseCase(
	sessions adapter.SessionStore,
	categoryRepo adapter.CategoryRepository,
	creator TransactionCreator,
	clock adapter.Clock,
) *HandleMessageUseCase {
	return &HandleMessageUseCase{
		sessions:     sessions,
		categoryRepo: categoryRepo,
		creator:      creator,
		clock:        clock,
	}
}

// Execute handles one message and advances the chat session.
func (uc *HandleMessageUseCase) Execute(ctx context.Context, input HandleMessageInput) (*HandleMessageOutput, error) {
	if strings.TrimSpace(input.ChatID) == "" {
		return nil, domainerror.NewConversationError(
			domainerror.ErrCodeMissingChatID,
			"chat_id is required",
			domainerror.ErrMissingChatID,
		)
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, domainerror.NewConversationError(domainerror.ErrCodeEmptyMessage, "text is required", nil)
	}

	switch strings.ToLower(text) {
	case commandCancel:
		if err := uc.sessions.Delete(ctx, input.ChatID); err != nil {
			return nil, storeError(err)
		}
		return reply("Cancelled.", entity.StepIdle), nil
	case commandAdd:
		session := entity.NewConversationSession(input.ChatID, input.UserID)
		if err := uc.sessions.Save(ctx, session); err != nil {
			return nil, storeError(err)
		}
		return reply("What is the transaction for?", session.Step), nil
	}

	session, err := uc.sessions.Get(ctx, input.ChatID)
	if errors.Is(err, domainerror.ErrSessionNotFound) {
		return reply("Send /add to record a transaction.", entity.StepIdle), nil
	}
	if err != nil {
		return nil, storeError(err)
	}
	if session.UserID != input.UserID {
		return reply("Send /add to record a transaction.", entity.StepIdle), nil
	}

	var output *HandleMessageOutput
	switch session.Step {
	case entity.StepAwaitingDescription:
		output = uc.describe(session, text)
	case entity.StepAwaitingAmount:
		output = uc.amount(session, text)
	case entity.StepAwaitingCategory:
		output, err = uc.category(ctx, session, text)
	case entity.StepAwaitingConfirmation:
		return uc.confirm(ctx, session, text)
	default:
		return reply("Send /add to record a transaction.", entity.StepIdle), nil
	}
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, storeError(err)
	}
	return output, nil
}

func (uc *HandleMessageUseCase) describe(session *entity.ConversationSession, text string) *HandleMessageOutput {
	if len(text) > transaction.MaxDescriptionLength {
		return reply(fmt.Sprintf("Keep the description under %d characters.", transaction.MaxDescriptionLength), session.Step)
	}
	session.Draft.Description = text
	session.Advance(entity.StepAwaitingAmount)
	return reply("How much? Use a negative amount for an expense.", session.Step)
}

func (uc *HandleMessageUseCase) amount(session *entity.ConversationSession, text string) *HandleMessageOutput {
	amount, err := decimal.NewFromString(strings.ReplaceAll(text, ",", "."))
	if err != nil || amount.IsZero() {
		return reply("That is not a valid amount. Try again, e.g. -12.50", session.Step)
	}

	session.Draft.Type = entity.TransactionTypeIncome
	if amount.IsNegative() {
		session.Draft.Type = entity.TransactionTypeExpense
	}
	session.Draft.Amount = amount.Abs()
	session.Advance(entity.StepAwaitingCategory)
	return reply("Which category? Send a name or pattern, or 'skip'.", session.Step)
}

func (uc *HandleMessageUseCase) category(ctx context.Context, session *entity.ConversationSession, text string) (*HandleMessageOutput, error) {
	if strings.EqualFold(text, answerSkip) {
		session.Draft.CategoryID = nil
		session.Draft.CategoryName = ""
		session.Advance(entity.StepAwaitingConfirmation)
		return reply(summary(session.Draft), session.Step), nil
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	matches := matchCategories(categories, text)
	switch len(matches) {
	case 0:
		return reply("No category matches. Try another name or 'skip'.", session.Step), nil
	case 1:
		session.Draft.CategoryID = &matches[0].ID
		session.Draft.CategoryName = matches[0].Name
		session.Advance(entity.StepAwaitingConfirmation)
		return reply(summary(session.Draft), session.Step), nil
	default:
		names := make([]string, len(matches))
		for i, c := range matches {
			names[i] = c.Name
		}
		return reply("Several categories match: "+strings.Join(names, ", ")+". Be more specific.", session.Step), nil
	}
}

func (uc *HandleMessageUseCase) confirm(ctx context.Context, session *entity.ConversationSession, text string) (*HandleMessageOutput, error) {
	switch strings.ToLower(text) {
	case "yes", "y":
		created, err := uc.creator.Execute(ctx, transaction.CreateTransactionInput{
			UserID:      session.UserID,
			Date:        uc.clock.Now().UTC(),
			Description: session.Draft.Description,
			Amount:      session.Draft.Amount,
			Type:        session.Draft.Type,
			CategoryID:  session.Draft.CategoryID,
		})
		if err != nil {
			return nil, err
		}
		if err := uc.sessions.Delete(ctx, session.ChatID); err != nil {
			return nil, storeError(err)
		}
		out := reply("Saved.", entity.StepIdle)
		out.TransactionID = &created.Transaction.ID
		return out, nil
	case "no", "n":
		if err := uc.sessions.Delete(ctx, session.ChatID); err != nil {
			return nil, storeError(err)
		}
		return reply("Discarded.", entity.StepIdle), nil
	default:
		return reply("Reply 'yes' to save or 'no' to discard.", session.Step), nil
	}
}

// matchCategories returns the categories whose name matches the pattern.
// An exact name wins. Without glob wildcards the pattern matches as a substring.
func matchCategories(categories []*entity.Category, pattern string) []*entity.Category {
	pattern = strings.ToLower(pattern)
	for _, c := range categories {
		if strings.ToLower(c.Name) == pattern {
			return []*entity.Category{c}
		}
	}

	if !strings.Contains(pattern, glob.GLOB) {
		pattern = glob.GLOB + pattern + glob.GLOB
	}

	var matches []*entity.Category
	for _, c := range categories {
		if glob.Glob(pattern, strings.ToLower(c.Name)) {
			matches = append(matches, c)
		}
	}
	return matches
}

func summary(draft entity.TransactionDraft) string {
	category := "no category"
	if draft.CategoryName != "" {
		category = draft.CategoryName
	}
	return fmt.Sprintf("Save %s of %s for %q in %s? (yes/no)", draft.Type, draft.Amount.StringFixed(2), draft.Description, category)
}

func reply(text string, step entity.ConversationStep) *HandleMessageOutput {
	return &HandleMessageOutput{Reply: text, Step: step}
}

func storeError(err error) error {
	return domainerror.NewConversationError(domainerror.ErrCodeSessionStoreFailure, "session store unavailable", err)
}
