package stats

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// A Recorder counts scheduler activity: tasks executed, memoized results
// reused, and panics recovered. A nil Recorder is valid and records nothing.
type Recorder struct {
	tasksRun  metric.Int64Counter
	cacheHits metric.Int64Counter
	panics    metric.Int64Counter
}

// NewRecorder produces a Recorder registering its instruments against meter
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	tasksRun, err := meter.Int64Counter("tange.tasks_run",
		metric.WithDescription("count of deferred tasks executed"))
	if err != nil {
		return nil, err
	}
	cacheHits, err := meter.Int64Counter("tange.cache_hits",
		metric.WithDescription("count of memoized task results reused"))
	if err != nil {
		return nil, err
	}
	panics, err := meter.Int64Counter("tange.task_panics",
		metric.WithDescription("count of panics recovered from deferred tasks"))
	if err != nil {
		return nil, err
	}
	return &Recorder{tasksRun: tasksRun, cacheHits: cacheHits, panics: panics}, nil
}

// NoopRecorder produces a Recorder backed by noop instruments
func NoopRecorder() *Recorder {
	r, _ := NewRecorder(noop.NewMeterProvider().Meter("tange"))
	return r
}

// TaskRun records the execution of a single deferred task
func (r *Recorder) TaskRun(ctx context.Context) {
	if r == nil {
		return
	}
	r.tasksRun.Add(ctx, 1)
}

// CacheHit records the reuse of a memoized task result
func (r *Recorder) CacheHit(ctx context.Context) {
	if r == nil {
		return
	}
	r.cacheHits.Add(ctx, 1)
}

// TaskPanic records a panic recovered from a deferred task
func (r *Recorder) TaskPanic(ctx context.Context) {
	if r == nil {
		return
	}
	r.panics.Add(ctx, 1)
}
