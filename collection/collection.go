// Package collection provides tange's data-parallel transformation algebra:
// an immutable, lazily evaluated Collection of independently processable
// partitions. Transformations only build graph nodes and return immediately;
// nothing executes until a terminal operation forces evaluation under a
// deferred.Scheduler.
//
// Operations which preserve the element type are methods on Collection;
// operations which change it (Map, FoldBy, Flatten, ...) are free functions,
// since Go methods cannot introduce type parameters.
package collection

import (
	"context"

	"github.com/tomzhang/tange/deferred"
)

// A Collection is an ordered sequence of partitions, each an opaque lazy
// handle which resolves to an ordered slice of elements. Collections are
// immutable values: every transformation returns a new Collection, and
// partition handles may be shared across derived Collections without copying
// element data. Transformation functions handed to a Collection must be pure
// and must not mutate their inputs.
type Collection[A any] struct {
	partitions []*deferred.Deferred[[]A]
}

// FromSlice lifts a materialized slice into a Collection with exactly one
// partition and zero computation dependencies
func FromSlice[A any](items []A) Collection[A] {
	return Collection[A]{
		partitions: []*deferred.Deferred[[]A]{deferred.Lift(items)},
	}
}

// FromSlices lifts several materialized slices into a Collection with one
// partition per slice. Useful for controlling the partition layout of test
// and benchmark inputs.
func FromSlices[A any](parts ...[]A) Collection[A] {
	ps := make([]*deferred.Deferred[[]A], len(parts))
	for i, items := range parts {
		ps[i] = deferred.Lift(items)
	}
	return Collection[A]{partitions: ps}
}

// fromPartitions wraps existing handles without copying
func fromPartitions[A any](ps []*deferred.Deferred[[]A]) Collection[A] {
	return Collection[A]{partitions: ps}
}

// NumPartitions returns the number of partitions in this Collection
func (c Collection[A]) NumPartitions() int {
	return len(c.partitions)
}

// Concat produces a Collection whose partitions are this Collection's
// partitions followed by other's, reusing both operands' handles verbatim.
// Costs O(partitions); no element data is copied.
func (c Collection[A]) Concat(other Collection[A]) Collection[A] {
	nps := make([]*deferred.Deferred[[]A], 0, len(c.partitions)+len(other.partitions))
	nps = append(nps, c.partitions...)
	nps = append(nps, other.partitions...)
	return fromPartitions(nps)
}

// Run is a terminal operation: it concatenates all partitions into a single
// ordered slice via a balanced tree-combine and forces the execution of the
// whole graph under s. For more than two partitions, the cross-partition
// concatenation order follows the combine tree's shape rather than partition
// index order. A Collection with zero partitions yields a nil slice.
func (c Collection[A]) Run(ctx context.Context, s deferred.Scheduler) ([]A, error) {
	cat := deferred.TreeReduce(c.partitions, concatSlices[A])
	if cat == nil {
		return nil, nil
	}
	return deferred.Evaluate(ctx, s, cat)
}

// concatSlices appends two slices into a fresh slice, leaving both inputs
// untouched
func concatSlices[A any](x, y []A) []A {
	out := make([]A, 0, len(x)+len(y))
	out = append(out, x...)
	return append(out, y...)
}
