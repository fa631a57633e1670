package adapter

import "time"

// RecurringRunStats summarizes one scheduler run.
type RecurringRunStats struct {
	Due                 int
	Created             int
	AlreadyMaterialized int
	Failed              int
	Duration            time.Duration
}

// SchedulerMetrics records scheduler activity.
type SchedulerMetrics interface {
	ObserveRun(stats RecurringRunStats)
}
