// Package deferred provides the lazy task graph underneath tange
// Collections. A Deferred is a handle to a value which has not been computed
// yet: either a concrete lifted value, or a pure function over other
// Deferred handles. Building a graph never executes anything; a Scheduler
// walks the graph on demand, computing every node at most once per
// execution, including nodes shared between multiple graphs.
//
// Task functions attached with Apply, Apply2 or BatchApply must be pure:
// no side effects on shared state, no mutation of their inputs. Combining
// functions passed to TreeReduce must additionally be associative, since the
// combine order follows a balanced binary tree rather than a left fold.
// Neither contract is checked; violating them yields nondeterministic
// results. Tasks which must perform I/O signal failure by panicking; the
// scheduler recovers the panic and aborts the execution with an error.
package deferred
