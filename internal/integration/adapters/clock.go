package adapters

import (
	"time"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

type systemClock struct{}

// NewSystemClock returns a clock backed by the wall clock, in UTC.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
