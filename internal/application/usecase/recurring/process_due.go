package recurring

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// AnchorMode selects the date the next run is computed from after a definition fires.
type AnchorMode string

const (
	// AnchorNextRun advances from the stored next run, keeping the cadence phase when the trigger runs late.
	AnchorNextRun AnchorMode = "next_run"
	// AnchorEvaluation advances from the evaluation date, so late triggers shift the schedule.
	AnchorEvaluation AnchorMode = "evaluation_date"
)

// ParseAnchorMode returns the anchor mode named by s, defaulting to AnchorNextRun.
func ParseAnchorMode(s string) AnchorMode {
	if AnchorMode(strings.ToLower(strings.TrimSpace(s))) == AnchorEvaluation {
		return AnchorEvaluation
	}
	return AnchorNextRun
}

// ProcessDueInput represents the input for a scheduler run.
type ProcessDueInput struct {
	EvaluationDate time.Time
}

// ProcessDueOutput summarizes a scheduler run.
type ProcessDueOutput struct {
	EvaluationDate      time.Time
	Due                 int
	Created             int
	AlreadyMaterialized int
	Failed              int
}

// ProcessDueUseCase materializes occurrences for every due recurring definition.
type ProcessDueUseCase struct {
	definitionRepo  adapter.RecurringDefinitionRepository
	transactionRepo adapter.TransactionRepository
	metrics         adapter.SchedulerMetrics
	anchor          AnchorMode
}

// NewProcessDueUseCase creates a new ProcessDueUseCase instance. metrics may be nil.
func NewProcessDueUseCase(
	definitionRepo adapter.RecurringDefinitionRepository,
	transactionRepo adapter.TransactionRepository,
	metrics adapter.SchedulerMetrics,
	anchor AnchorMode,
) *ProcessDueUseCase {
	if anchor == "" {
		anchor = AnchorNextRun
	}
	return &ProcessDueUseCase{
		definitionRepo:  definitionRepo,
		transactionRepo: transactionRepo,
		metrics:         metrics,
		anchor:          anchor,
	}
}

// Execute processes every definition whose next run is at or before the evaluation date.
// Definitions are handled one at a time and a failure on one does not stop the others.
// An error is returned only when the due set cannot be loaded.
func (uc *ProcessDueUseCase) Execute(ctx context.Context, input ProcessDueInput) (*ProcessDueOutput, error) {
	started := time.Now()
	evaluationDate := input.EvaluationDate.UTC()

	definitions, err := uc.definitionRepo.FindDue(ctx, evaluationDate)
	if err != nil {
		slog.Error("Failed to fetch due recurring definitions",
			"evaluation_date", evaluationDate,
			"error", err,
		)
		return nil, err
	}

	output := &ProcessDueOutput{
		EvaluationDate: evaluationDate,
		Due:            len(definitions),
	}

	for _, definition := range definitions {
		if err := ctx.Err(); err != nil {
			slog.Warn("Recurring run interrupted",
				"processed", output.Created+output.AlreadyMaterialized+output.Failed,
				"due", output.Due,
				"error", err,
			)
			break
		}

		created, err := uc.processDefinition(ctx, definition, evaluationDate)
		switch {
		case err != nil:
			output.Failed++
		case created:
			output.Created++
		default:
			output.AlreadyMaterialized++
		}
	}

	duration := time.Since(started)
	if uc.metrics != nil {
		uc.metrics.ObserveRun(adapter.RecurringRunStats{
			Due:                 output.Due,
			Created:             output.Created,
			AlreadyMaterialized: output.AlreadyMaterialized,
			Failed:              output.Failed,
			Duration:            duration,
		})
	}

	slog.Info("Recurring run completed",
		"evaluation_date", evaluationDate,
		"due", output.Due,
		"created", output.Created,
		"already_materialized", output.AlreadyMaterialized,
		"failed", output.Failed,
		"duration", duration,
	)

	return output, nil
}

// processDefinition materializes one occurrence and advances the definition.
// The occurrence key is derived from the current NextRunAt, so a retry after the
// occurrence was written but before the definition advanced writes nothing new.
func (uc *ProcessDueUseCase) processDefinition(ctx context.Context, definition *entity.RecurringDefinition, evaluationDate time.Time) (bool, error) {
	logger := slog.With(
		"definition_id", definition.ID,
		"user_id", definition.UserID,
		"next_run_at", definition.NextRunAt,
	)

	nextRunAt, err := uc.nextRunAfter(definition, evaluationDate)
	if err != nil {
		logger.Error("Failed to compute next run", "error", err)
		return false, err
	}

	occurrence := entity.NewOccurrence(definition, evaluationDate)
	created, err := uc.transactionRepo.CreateOccurrence(ctx, occurrence)
	if err != nil {
		logger.Error("Failed to create occurrence", "error", err)
		return false, err
	}
	if !created {
		logger.Warn("Occurrence already materialized, advancing definition",
			"occurrence_key", *occurrence.OccurrenceKey,
		)
	}

	if err := uc.definitionRepo.UpdateRunDates(ctx, definition.ID, evaluationDate, nextRunAt); err != nil {
		logger.Error("Failed to advance recurring definition", "error", err)
		return false, err
	}
	definition.MarkRun(evaluationDate, nextRunAt)

	return created, nil
}

// nextRunAfter returns the first scheduled run strictly after the evaluation date.
func (uc *ProcessDueUseCase) nextRunAfter(definition *entity.RecurringDefinition, evaluationDate time.Time) (time.Time, error) {
	anchor := definition.NextRunAt
	if uc.anchor == AnchorEvaluation {
		anchor = evaluationDate
	}

	next, err := NextRun(definition.Cadence, definition.Interval, anchor, definition.DayOfWeek, definition.DayOfMonth)
	if err != nil {
		return time.Time{}, err
	}
	for !next.After(evaluationDate) {
		next, err = NextRun(definition.Cadence, definition.Interval, next, definition.DayOfWeek, definition.DayOfMonth)
		if err != nil {
			return time.Time{}, err
		}
	}
	return next, nil
}
