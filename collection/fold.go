package collection

import (
	"github.com/tomzhang/tange/deferred"
)

// A Pair is a key/aggregate produced by grouped aggregation
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// FoldBy performs a two-stage grouped aggregation. Stage one folds each
// partition independently, in encounter order, into a key-to-accumulator
// mapping: each element's accumulator starts from def() and advances through
// combine. Stage two merges the per-partition mappings pairwise along a
// balanced tree: keys present on one side pass through unchanged, keys
// present on both sides merge through reduce.
//
// Because the merge order follows the combine tree's shape rather than
// global element order, reduce must be associative and commutative for the
// result to be deterministic. This is the caller's obligation; it is not
// checked.
//
// The result is a single-partition Collection of key/aggregate Pairs whose
// key set equals the distinct outputs of key. Pair order is unspecified.
func FoldBy[A any, K comparable, B any](
	c Collection[A],
	key func(A) K,
	def func() B,
	combine func(acc B, v A) B,
	reduce func(x, y B) B,
) Collection[Pair[K, B]] {
	stage1 := deferred.BatchApply(c.partitions, func(_ int, vs []A) map[K]B {
		folded := make(map[K]B)
		for _, v := range vs {
			k := key(v)
			acc, ok := folded[k]
			if !ok {
				acc = def()
			}
			folded[k] = combine(acc, v)
		}
		return folded
	})
	merged := deferred.TreeReduce(stage1, func(left, right map[K]B) map[K]B {
		out := make(map[K]B, len(left))
		for k, v := range left {
			out[k] = v
		}
		for k, v := range right {
			if cur, ok := out[k]; ok {
				out[k] = reduce(cur, v)
			} else {
				out[k] = v
			}
		}
		return out
	})
	if merged == nil {
		// degenerate zero-partition input
		return Collection[Pair[K, B]]{}
	}
	flat := deferred.Apply(merged, func(m map[K]B) []Pair[K, B] {
		out := make([]Pair[K, B], 0, len(m))
		for k, v := range m {
			out = append(out, Pair[K, B]{Key: k, Value: v})
		}
		return out
	})
	return fromPartitions([]*deferred.Deferred[[]Pair[K, B]]{flat})
}

// Count counts each partition's elements in parallel and tree-sums the
// per-partition counts, yielding a single-element, single-partition
// Collection holding the total.
func (c Collection[A]) Count() Collection[int] {
	counts := deferred.BatchApply(c.partitions, func(_ int, vs []A) int {
		return len(vs)
	})
	total := deferred.TreeReduce(counts, func(x, y int) int {
		return x + y
	})
	if total == nil {
		return Collection[int]{}
	}
	out := deferred.Apply(total, func(x int) []int {
		return []int{x}
	})
	return fromPartitions([]*deferred.Deferred[[]int]{out})
}

// Frequencies counts occurrences of each distinct element: FoldBy with the
// identity key, a zero default, an increment combine and a sum reduce.
func Frequencies[A comparable](c Collection[A]) Collection[Pair[A, int]] {
	return FoldBy(c,
		func(v A) A { return v },
		func() int { return 0 },
		func(acc int, _ A) int { return acc + 1 },
		func(x, y int) int { return x + y },
	)
}
