// Package alert evaluates budget spend after expense writes and records a
// notification when spend crosses a warning or exceeded threshold.
//
// Evaluation is detached from the request that created the expense: triggers
// go through a bounded queue consumed by a fixed pool of workers, and the
// caller never waits. Every abort path is silent towards callers but emits a
// structured log and a metric so failures stay diagnosable.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"exptrack/internal/budget"
	"exptrack/internal/platform/metrics"
	dErrors "exptrack/pkg/domain-errors"

	"github.com/google/uuid"
)

const (
	warningThreshold  = 80.0
	exceededThreshold = 100.0

	// NotificationCategory tags every alert row written by the engine.
	NotificationCategory = "Budget Alert"

	evaluationTimeout = 10 * time.Second
)

// BudgetFinder looks up a budget scoped to its owner.
type BudgetFinder interface {
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*budget.Budget, error)
}

// SpendAggregator recomputes total spend against a budget from scratch.
type SpendAggregator interface {
	AggregateSpendForBudget(ctx context.Context, budgetID uuid.UUID) (int64, error)
}

// NotificationSink appends one alert row.
type NotificationSink interface {
	Insert(ctx context.Context, ownerID uuid.UUID, category, message string) error
}

type job struct {
	budgetID uuid.UUID
	ownerID  uuid.UUID
}

// Config sizes the engine's queue and worker pool.
type Config struct {
	Workers   int
	QueueSize int
}

// Engine is the detached budget alert evaluator.
type Engine struct {
	budgets       BudgetFinder
	expenses      SpendAggregator
	notifications NotificationSink
	logger        *slog.Logger
	metrics       *metrics.Metrics

	workers int
	jobs    chan job
	wg      sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewEngine(cfg Config, budgets BudgetFinder, expenses SpendAggregator, notifications NotificationSink, logger *slog.Logger, m *metrics.Metrics) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	return &Engine{
		budgets:       budgets,
		expenses:      expenses,
		notifications: notifications,
		logger:        logger,
		metrics:       m,
		workers:       cfg.Workers,
		jobs:          make(chan job, cfg.QueueSize),
	}
}

// Start launches the worker pool.
func (e *Engine) Start() {
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker()
	}
	e.logger.Info("budget alert engine started", "workers", e.workers, "queue_size", cap(e.jobs))
}

// Stop closes the queue, drains buffered jobs, and waits for the workers.
// New triggers after Stop are dropped, not panicked on.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.jobs)
	e.mu.Unlock()

	e.wg.Wait()
	e.logger.Info("budget alert engine stopped")
}

// Trigger enqueues an evaluation for the budget without blocking. If the
// queue is full or the engine is stopped the trigger is dropped: the next
// expense write against the budget re-derives the same state.
func (e *Engine) Trigger(budgetID, ownerID uuid.UUID) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stopped {
		e.metrics.EvaluationsDropped.Inc()
		e.logger.Warn("evaluation dropped, engine stopped", "budget_id", budgetID)
		return
	}
	select {
	case e.jobs <- job{budgetID: budgetID, ownerID: ownerID}:
	default:
		e.metrics.EvaluationsDropped.Inc()
		e.logger.Warn("evaluation dropped, queue full", "budget_id", budgetID)
	}
}

func (e *Engine) worker() {
	defer e.wg.Done()
	for j := range e.jobs {
		e.evaluate(j)
	}
}

// evaluate recomputes spend for one budget and writes at most one
// notification. It runs after the triggering insert committed, so the
// aggregate always includes that expense. There is no idempotence guard:
// concurrent triggers may each cross the threshold and each write an alert.
func (e *Engine) evaluate(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), evaluationTimeout)
	defer cancel()

	b, err := e.budgets.FindByID(ctx, j.budgetID, j.ownerID)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeNotFound {
			// Deleted (or never owned) between trigger and evaluation.
			e.metrics.EvaluationsSkipped.Inc()
			e.logger.Debug("evaluation skipped, budget gone", "budget_id", j.budgetID)
			return
		}
		e.metrics.EvaluationsFailed.Inc()
		e.logger.Error("evaluation failed to load budget", "budget_id", j.budgetID, "error", err)
		return
	}

	total, err := e.expenses.AggregateSpendForBudget(ctx, j.budgetID)
	if err != nil {
		e.metrics.EvaluationsFailed.Inc()
		e.logger.Error("evaluation failed to aggregate spend", "budget_id", j.budgetID, "error", err)
		return
	}

	if b.Amount <= 0 {
		e.metrics.EvaluationsSkipped.Inc()
		e.logger.Warn("evaluation skipped, non-positive budget amount", "budget_id", j.budgetID)
		return
	}

	pct := float64(total) / float64(b.Amount) * 100

	var level, message string
	switch {
	case pct >= exceededThreshold:
		level = "exceeded"
		message = fmt.Sprintf("Budget %q (ID: %s) has been exceeded: spent %d of %d (%.1f%%)",
			b.Name, b.ID, total, b.Amount, pct)
	case pct >= warningThreshold:
		level = "warning"
		message = fmt.Sprintf("Budget %q (ID: %s) is close to its limit: spent %d of %d (%.1f%%)",
			b.Name, b.ID, total, b.Amount, pct)
	default:
		e.metrics.EvaluationsBelowMin.Inc()
		return
	}

	if err := e.notifications.Insert(ctx, j.ownerID, NotificationCategory, message); err != nil {
		e.metrics.EvaluationsFailed.Inc()
		e.logger.Error("evaluation failed to write notification", "budget_id", j.budgetID, "error", err)
		return
	}

	e.metrics.AlertsEmitted.WithLabelValues(level).Inc()
	e.logger.Info("budget alert emitted",
		"budget_id", j.budgetID,
		"level", level,
		"spent", total,
		"amount", b.Amount,
	)
}
