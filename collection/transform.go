package collection

import (
	"cmp"
	"slices"

	"github.com/tomzhang/tange/deferred"
)

// Map applies f to every element, partition by partition, preserving
// within-partition order and partition count. Partitions carry no ordering
// dependency on one another and may be computed concurrently. f must be pure.
func Map[A, B any](c Collection[A], f func(A) B) Collection[B] {
	out := deferred.BatchApply(c.partitions, func(_ int, vs []A) []B {
		agg := make([]B, 0, len(vs))
		for _, v := range vs {
			agg = append(agg, f(v))
		}
		return agg
	})
	return fromPartitions(out)
}

// Filter drops elements failing p, preserving relative order within each
// partition. The partition count is unchanged; individual partitions may
// shrink to empty.
func (c Collection[A]) Filter(p func(A) bool) Collection[A] {
	out := deferred.BatchApply(c.partitions, func(_ int, vs []A) []A {
		agg := make([]A, 0, len(vs))
		for _, v := range vs {
			if p(v) {
				agg = append(agg, v)
			}
		}
		return agg
	})
	return fromPartitions(out)
}

// SortBy sorts each partition independently, ascending and stable by key.
// This is a local sort only: partition membership and count are unchanged,
// and no ordering is established across partitions.
func SortBy[A any, K cmp.Ordered](c Collection[A], key func(A) K) Collection[A] {
	out := deferred.BatchApply(c.partitions, func(_ int, vs []A) []A {
		sorted := slices.Clone(vs)
		slices.SortStableFunc(sorted, func(a, b A) int {
			return cmp.Compare(key(a), key(b))
		})
		return sorted
	})
	return fromPartitions(out)
}

// Flatten concatenates each partition's nested slices into one flat slice,
// preserving nested order. The partition count is unchanged.
func Flatten[A any](c Collection[[]A]) Collection[A] {
	out := deferred.BatchApply(c.partitions, func(_ int, vss [][]A) []A {
		var flat []A
		for _, vs := range vss {
			flat = append(flat, vs...)
		}
		return flat
	})
	return fromPartitions(out)
}
