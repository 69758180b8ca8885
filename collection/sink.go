package collection

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tomzhang/tange"
	"github.com/tomzhang/tange/deferred"
	"github.com/tomzhang/tange/errors"
)

// Sink writes each partition of a string Collection to its own file under
// path, named by the partition's 0-based index, one element per line with a
// trailing newline and no escaping. The directory is created recursively if
// absent; rewriting the same path and index overwrites prior content. The
// result is a Collection of per-partition line counts, one single-element
// partition per input partition.
//
// Sink is lazy like every other operation: files are written when the
// returned Collection (or something derived from it) is run. I/O failures
// abort the partition's unit of work and surface as an error from the
// scheduler.
func Sink[A ~string](c Collection[A], path string) Collection[int] {
	out := deferred.BatchApply(c.partitions, func(idx int, vs []A) []int {
		if err := os.MkdirAll(path, 0755); err != nil {
			panic(errors.StoreWriteError{Target: path, Cause: err})
		}
		name := filepath.Join(path, strconv.Itoa(idx))
		f, err := os.Create(name)
		if err != nil {
			panic(errors.StoreWriteError{Target: name, Cause: err})
		}
		bw := bufio.NewWriter(f)
		for _, line := range vs {
			if _, err := bw.WriteString(string(line)); err != nil {
				f.Close()
				panic(errors.StoreWriteError{Target: name, Cause: err})
			}
			if err := bw.WriteByte('\n'); err != nil {
				f.Close()
				panic(errors.StoreWriteError{Target: name, Cause: err})
			}
		}
		if err := bw.Flush(); err != nil {
			f.Close()
			panic(errors.StoreWriteError{Target: name, Cause: err})
		}
		if err := f.Close(); err != nil {
			panic(errors.StoreWriteError{Target: name, Cause: err})
		}
		return []int{len(vs)}
	})
	return fromPartitions(out)
}

// Persist routes each partition through a fresh write session of acc and
// re-reads it from the completed artifact, so downstream consumers observe
// the stored copy. Element order and partition count are unchanged. Storage
// failures abort the partition's unit of work and surface as an error from
// the scheduler.
func Persist[A any](c Collection[A], acc tange.Accumulator[A]) Collection[A] {
	out := deferred.BatchApply(c.partitions, func(_ int, vs []A) []A {
		artifact, err := tange.WriteSlice(acc, vs)
		if err != nil {
			panic(err)
		}
		items, err := artifact.Stream()
		if err != nil {
			panic(err)
		}
		return items
	})
	return fromPartitions(out)
}
