package deferred

// A Task is a single node in the lazy graph: a unit of work in one of three
// states (not started, running, completed-with-cached-value) as far as an
// executing Scheduler is concerned. Task identity is pointer identity;
// handles shared between graphs point at the same Task and are computed at
// most once per execution.
type Task struct {
	deps  []*Task
	fn    func(inputs []interface{}) interface{} // nil for lifted values
	value interface{}                            // concrete value when fn is nil
}

// Dependencies returns the Tasks this Task consumes, in input order
func (t *Task) Dependencies() []*Task {
	return t.deps
}

// lifted reports whether this Task wraps an already-known value
func (t *Task) lifted() bool {
	return t.fn == nil
}

// A Deferred is a typed handle to a lazily computed value of type A.
// Deferred values are immutable: attaching a function produces a new handle
// and never modifies an existing one.
type Deferred[A any] struct {
	task *Task
}

// Task returns the underlying graph node of this handle
func (d *Deferred[A]) Task() *Task {
	return d.task
}

// Lift wraps a concrete value in a dependency-free, already-computed handle
func Lift[A any](value A) *Deferred[A] {
	return &Deferred[A]{task: &Task{value: value}}
}

// Apply attaches a pure function to a handle, producing a new handle whose
// value is f applied to d's value
func Apply[A, B any](d *Deferred[A], f func(A) B) *Deferred[B] {
	return &Deferred[B]{task: &Task{
		deps: []*Task{d.task},
		fn: func(inputs []interface{}) interface{} {
			return f(inputs[0].(A))
		},
	}}
}

// Apply2 combines two handles with a pure binary function
func Apply2[A, B, C any](left *Deferred[A], right *Deferred[B], f func(A, B) C) *Deferred[C] {
	return &Deferred[C]{task: &Task{
		deps: []*Task{left.task, right.task},
		fn: func(inputs []interface{}) interface{} {
			return f(inputs[0].(A), inputs[1].(B))
		},
	}}
}

// BatchApply attaches a pure function to every handle in ds independently,
// passing each handle's position alongside its value. The results carry no
// ordering dependency on one another and may be computed concurrently.
func BatchApply[A, B any](ds []*Deferred[A], f func(idx int, v A) B) []*Deferred[B] {
	out := make([]*Deferred[B], len(ds))
	for i, d := range ds {
		idx := i
		out[i] = Apply(d, func(v A) B {
			return f(idx, v)
		})
	}
	return out
}

// TreeReduce combines a list of handles pairwise into a single handle using
// a balanced binary tree, bounding combine depth to O(log(len(ds))). The
// tree's shape depends only on len(ds), so the sequence of combinations is
// reproducible for a given input count. f must be associative. Returns nil
// for an empty input list.
func TreeReduce[A any](ds []*Deferred[A], f func(A, A) A) *Deferred[A] {
	if len(ds) == 0 {
		return nil
	}
	level := ds
	for len(level) > 1 {
		next := make([]*Deferred[A], 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, Apply2(level[i], level[i+1], f))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	return level[0]
}
