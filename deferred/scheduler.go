package deferred

import (
	"context"

	"github.com/tomzhang/tange/errors"
	"github.com/tomzhang/tange/internal/util"
	"github.com/tomzhang/tange/stats"
)

// A Scheduler executes the graph reachable from a root Task and returns the
// root's value. Schedulers own memoization: within one Execute call, every
// reachable Task is computed exactly once, no matter how many graphs share
// it. Failures (panics recovered from tasks, cancellation) abort the whole
// execution.
type Scheduler interface {
	Execute(ctx context.Context, root *Task) (interface{}, error) // Execute computes root's value, forcing its dependencies
}

// Evaluate forces a typed handle under a Scheduler
func Evaluate[A any](ctx context.Context, s Scheduler, d *Deferred[A]) (A, error) {
	var zero A
	v, err := s.Execute(ctx, d.task)
	if err != nil {
		return zero, err
	}
	return v.(A), nil
}

// Serial is a single-goroutine Scheduler which evaluates the graph with an
// iterative depth-first walk. Useful for tests and for graphs whose work is
// too small to amortize goroutine overhead.
type Serial struct {
	Stats *stats.Recorder // optional execution counters
}

// Execute computes root's value, forcing its dependencies
func (s *Serial) Execute(ctx context.Context, root *Task) (interface{}, error) {
	values := make(map[*Task]interface{})
	// explicit stack rather than recursion: deep combine chains would
	// otherwise grow the goroutine stack linearly
	stack := []*Task{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := stack[len(stack)-1]
		if _, done := values[t]; done {
			// pushed more than once: a node shared between graphs
			s.Stats.CacheHit(ctx)
			stack = stack[:len(stack)-1]
			continue
		}
		if t.lifted() {
			values[t] = t.value
			stack = stack[:len(stack)-1]
			continue
		}
		ready := true
		for _, dep := range t.deps {
			if _, done := values[dep]; !done {
				stack = append(stack, dep)
				ready = false
			}
		}
		if !ready {
			continue
		}
		v, err := computeTask(ctx, t, values, s.Stats)
		if err != nil {
			return nil, err
		}
		values[t] = v
		stack = stack[:len(stack)-1]
	}
	return values[root], nil
}

// computeTask runs a single task against already-computed dependency values,
// converting a recovered panic into a TaskPanicError
func computeTask(ctx context.Context, t *Task, values map[*Task]interface{}, rec *stats.Recorder) (v interface{}, err error) {
	inputs := make([]interface{}, len(t.deps))
	for i, dep := range t.deps {
		inputs[i] = values[dep]
	}
	defer func() {
		if r := recover(); r != nil {
			rec.TaskPanic(ctx)
			err = errors.TaskPanicError{Value: r, Trace: util.GetTrace()}
		}
	}()
	rec.TaskRun(ctx)
	v = t.fn(inputs)
	return
}
