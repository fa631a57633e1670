package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type countingProcessor struct {
	mu     sync.Mutex
	inputs []recurring.ProcessDueInput
	err    error
}

func (p *countingProcessor) Execute(_ context.Context, input recurring.ProcessDueInput) (*recurring.ProcessDueOutput, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inputs = append(p.inputs, input)
	if p.err != nil {
		return nil, p.err
	}
	return &recurring.ProcessDueOutput{EvaluationDate: input.EvaluationDate}, nil
}

func (p *countingProcessor) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inputs)
}

func TestWorker_ProcessNowUsesClock(t *testing.T) {
	now := time.Date(2024, time.March, 1, 6, 0, 0, 0, time.UTC)
	processor := &countingProcessor{}
	worker := NewWorker(processor, fixedClock{now: now}, WorkerConfig{})

	worker.ProcessNow(context.Background())

	assert.Equal(t, 1, processor.calls())
	assert.Equal(t, now, processor.inputs[0].EvaluationDate)
	assert.Equal(t, time.Hour, worker.pollInterval)
}

func TestWorker_StartRunsUntilCancelled(t *testing.T) {
	processor := &countingProcessor{err: errors.New("database unavailable")}
	worker := NewWorker(processor, fixedClock{now: time.Now()}, WorkerConfig{PollInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return processor.calls() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
