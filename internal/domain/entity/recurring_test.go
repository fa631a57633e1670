package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestParseCadenceKind(t *testing.T) {
	tests := []struct {
		input    string
		expected CadenceKind
		valid    bool
	}{
		{"DAILY", CadenceDaily, true},
		{"weekly", CadenceWeekly, true},
		{" Monthly ", CadenceMonthly, true},
		{"YEARLY", CadenceYearly, true},
		{"custom", CadenceCustom, true},
		{"FORTNIGHTLY", CadenceKind("FORTNIGHTLY"), false},
		{"", CadenceKind(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, ok := ParseCadenceKind(tt.input)
			if ok != tt.valid {
				t.Errorf("ParseCadenceKind(%q) valid = %v, want %v", tt.input, ok, tt.valid)
			}
			if kind != tt.expected {
				t.Errorf("ParseCadenceKind(%q) = %s, want %s", tt.input, kind, tt.expected)
			}
		})
	}
}

func TestRecurringDefinition_OccurrenceKey(t *testing.T) {
	next := time.Date(2024, 1, 4, 9, 30, 0, 0, time.UTC)
	def := NewRecurringDefinition(uuid.New(), "Rent", decimal.NewFromInt(1200), TransactionTypeExpense, nil, CadenceMonthly, 1, nil, nil, nil, next)

	expected := def.ID.String() + ":2024-01-04"
	if got := def.OccurrenceKey(); got != expected {
		t.Errorf("OccurrenceKey() = %s, want %s", got, expected)
	}

	def.MarkRun(next, next.AddDate(0, 1, 0))
	if got := def.OccurrenceKey(); got != def.ID.String()+":2024-02-04" {
		t.Errorf("OccurrenceKey() after run = %s, want key for 2024-02-04", got)
	}
	if def.LastRunAt == nil || !def.LastRunAt.Equal(next) {
		t.Errorf("expected LastRunAt to be %v, got %v", next, def.LastRunAt)
	}
}

func TestRecurringDefinition_IsDue(t *testing.T) {
	next := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	def := NewRecurringDefinition(uuid.New(), "Gym", decimal.NewFromInt(50), TransactionTypeExpense, nil, CadenceDaily, 0, nil, nil, nil, next)

	if def.Interval != 1 {
		t.Errorf("expected non-positive interval to default to 1, got %d", def.Interval)
	}
	if !def.IsDue(next) {
		t.Error("expected definition to be due at its next run")
	}
	if def.IsDue(next.Add(-time.Second)) {
		t.Error("expected definition not to be due before its next run")
	}
}

func TestNewOccurrence(t *testing.T) {
	categoryID := uuid.New()
	next := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	def := NewRecurringDefinition(uuid.New(), "Netflix", decimal.NewFromFloat(15.99), TransactionTypeExpense, &categoryID, CadenceMonthly, 1, nil, nil, nil, next)
	evaluatedAt := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	occ := NewOccurrence(def, evaluatedAt)

	if !occ.IsPending() {
		t.Errorf("expected occurrence to be pending, got %s", occ.Status)
	}
	if !occ.Date.Equal(evaluatedAt) {
		t.Errorf("expected occurrence dated %v, got %v", evaluatedAt, occ.Date)
	}
	if occ.OccurrenceKey == nil || *occ.OccurrenceKey != def.OccurrenceKey() {
		t.Errorf("expected occurrence key %s, got %v", def.OccurrenceKey(), occ.OccurrenceKey)
	}
	if occ.RecurringDefinitionID == nil || *occ.RecurringDefinitionID != def.ID {
		t.Error("expected occurrence to reference its definition")
	}
	if !occ.Amount.Equal(def.Amount) || occ.Description != def.Description || *occ.CategoryID != categoryID {
		t.Error("expected occurrence to copy definition fields")
	}

	occ.Approve()
	if occ.IsPending() {
		t.Error("expected occurrence to be approved")
	}
}
