package collection

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/tomzhang/tange/deferred"
)

// Split repartitions this Collection into n buckets, assigning each element
// to bucket local-index mod n. Equivalent to Partition(n, bucket by index).
func (c Collection[A]) Split(n int) Collection[A] {
	return c.Partition(n, func(idx int, _ A) int {
		return idx
	})
}

// Partition repartitions this Collection into up to n buckets by
// f(localIndex, element) mod n, in two stages. First, every source partition
// independently groups its elements into n local buckets. Second, for each
// target bucket, the local buckets from all sources are concatenated with a
// balanced tree-combine whose shape depends only on the source partition
// count, bounding combine depth to O(log(sources)). For elements coming from
// different source partitions, relative order in the output follows the tree
// shape and is not guaranteed stable.
//
// A source Collection with zero partitions produces zero output partitions.
func (c Collection[A]) Partition(n int, f func(idx int, v A) int) Collection[A] {
	if n <= 0 {
		panic(fmt.Sprintf("cannot repartition into %d buckets", n))
	}
	stage1 := deferred.BatchApply(c.partitions, func(_ int, vs []A) [][]A {
		parts := make([][]A, n)
		for idx, x := range vs {
			p := f(idx, x) % n
			if p < 0 {
				p += n
			}
			parts[p] = append(parts[p], x)
		}
		return parts
	})
	newChunks := make([]*deferred.Deferred[[]A], 0, n)
	for idx := 0; idx < n; idx++ {
		bucket := make([]*deferred.Deferred[[]A], 0, len(stage1))
		for _, s := range stage1 {
			i := idx
			bucket = append(bucket, deferred.Apply(s, func(parts [][]A) []A {
				return parts[i]
			}))
		}
		if out := deferred.TreeReduce(bucket, concatSlices[A]); out != nil {
			newChunks = append(newChunks, out)
		}
	}
	return fromPartitions(newChunks)
}

// PartitionByKey repartitions this Collection into up to n buckets by
// hashing each element's key with xxhash. xxhash is fixed and unseeded, so
// identical keys land in identical buckets across runs and processes.
func PartitionByKey[A any](c Collection[A], n int, key func(A) []byte) Collection[A] {
	return c.Partition(n, func(_ int, v A) int {
		return int(xxhash.Sum64(key(v)) % uint64(n))
	})
}
