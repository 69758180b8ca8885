package deferred

import (
	"context"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"github.com/tomzhang/tange/errors"
	"github.com/tomzhang/tange/internal/util"
	"github.com/tomzhang/tange/logging"
	"github.com/tomzhang/tange/stats"
)

// PoolOptions is a struct which configures a Pool Scheduler
type PoolOptions struct {
	Concurrency int             // maximum number of tasks computed simultaneously (default NumCPU)
	Log         *logging.Logger // optional logger for task-level diagnostics
	Stats       *stats.Recorder // optional execution counters
}

// Pool is a Scheduler which computes independent tasks concurrently,
// bounding parallelism with a weighted semaphore. Partition-local work
// (map, filter, local bucketing, local folds) shares no state across tasks
// and fans out freely; tree-combine nodes wait on their two inputs, keeping
// the critical path logarithmic in partition count.
type Pool struct {
	opts PoolOptions
}

// NewPool produces a Pool Scheduler
func NewPool(opts PoolOptions) *Pool {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	return &Pool{opts: opts}
}

// poolRun is the state of one Execute call: memoized values, per-task
// outstanding-dependency counts, and reverse edges for release propagation
type poolRun struct {
	pool       *Pool
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	values     map[*Task]interface{}
	waiting    map[*Task]int
	dependents map[*Task][]*Task
	wg         sync.WaitGroup
	limit      *semaphore.Weighted
	errLock    sync.Mutex
	errs       *multierror.Error
}

// Execute computes root's value, forcing its dependencies
func (p *Pool) Execute(ctx context.Context, root *Task) (interface{}, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	run := &poolRun{
		pool:       p,
		ctx:        runCtx,
		cancel:     cancel,
		values:     make(map[*Task]interface{}),
		waiting:    make(map[*Task]int),
		dependents: make(map[*Task][]*Task),
		limit:      semaphore.NewWeighted(int64(p.opts.Concurrency)),
	}
	ready := run.discover(root)
	run.mu.Lock()
	for _, t := range ready {
		run.launch(t)
	}
	run.mu.Unlock()
	run.wg.Wait()
	if err := run.fetchError(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	return run.values[root], nil
}

// discover walks the graph reachable from root, deduplicating shared nodes,
// counting each task's distinct dependencies and recording reverse edges.
// Returns the tasks which are immediately runnable.
func (r *poolRun) discover(root *Task) []*Task {
	var ready []*Task
	seen := make(map[*Task]bool)
	stack := []*Task{root}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[t] {
			r.pool.opts.Stats.CacheHit(r.ctx)
			continue
		}
		seen[t] = true
		distinct := make(map[*Task]bool, len(t.deps))
		for _, dep := range t.deps {
			if !distinct[dep] {
				distinct[dep] = true
				r.dependents[dep] = append(r.dependents[dep], t)
			}
			stack = append(stack, dep)
		}
		r.waiting[t] = len(distinct)
		if len(distinct) == 0 {
			ready = append(ready, t)
		}
	}
	return ready
}

// launch schedules one runnable task. Caller must hold r.mu.
func (r *poolRun) launch(t *Task) {
	r.wg.Add(1)
	go r.asyncRunTask(t)
}

func (r *poolRun) asyncRunTask(t *Task) {
	defer r.wg.Done()
	if err := r.limit.Acquire(r.ctx, 1); err != nil {
		return // execution cancelled while waiting for a slot
	}
	var v interface{}
	var err error
	if t.lifted() {
		v = t.value
	} else {
		r.mu.Lock()
		values := r.values
		inputs := make([]interface{}, len(t.deps))
		for i, dep := range t.deps {
			inputs[i] = values[dep]
		}
		r.mu.Unlock()
		v, err = r.computeOne(t, inputs)
	}
	r.limit.Release(1)
	if err != nil {
		r.pool.opts.Log.Errorf("deferred task failed: %v", err)
		r.appendError(err)
		r.cancel()
		return
	}
	r.mu.Lock()
	r.values[t] = v
	for _, dep := range r.dependents[t] {
		r.waiting[dep]--
		if r.waiting[dep] == 0 {
			r.launch(dep)
		}
	}
	r.mu.Unlock()
}

// computeOne runs a single task body, converting a recovered panic into a
// TaskPanicError
func (r *poolRun) computeOne(t *Task, inputs []interface{}) (v interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.pool.opts.Stats.TaskPanic(r.ctx)
			err = errors.TaskPanicError{Value: rec, Trace: util.GetTrace()}
		}
	}()
	r.pool.opts.Stats.TaskRun(r.ctx)
	v = t.fn(inputs)
	return
}

func (r *poolRun) appendError(err error) {
	r.errLock.Lock()
	defer r.errLock.Unlock()
	r.errs = multierror.Append(r.errs, err)
}

func (r *poolRun) fetchError() error {
	r.errLock.Lock()
	defer r.errLock.Unlock()
	if r.errs != nil {
		r.errs.ErrorFormat = util.FormatMultiError
	}
	return r.errs.ErrorOrNil()
}
