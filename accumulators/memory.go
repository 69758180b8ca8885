// Package accumulators provides tange's built-in storage backends: Memory,
// FileStore and SQLiteStore. All of them honor the write-then-read protocol
// defined by the root package: open a writer, feed it elements, finish, and
// stream the completed artifact back in written order.
package accumulators

import (
	"github.com/tomzhang/tange"
	"github.com/tomzhang/tange/errors"
)

// Memory is an Accumulator which keeps written elements in process memory.
// Finishing a session hands the writer's backing slice over as the completed
// artifact; streaming returns it directly. Memory has no failure modes.
type Memory[A any] struct{}

// NewMemory produces a Memory Accumulator
func NewMemory[A any]() *Memory[A] {
	return &Memory[A]{}
}

// Writer starts a fresh write session against process memory
func (m *Memory[A]) Writer() (tange.ValueWriter[A], error) {
	return &memoryWriter[A]{}, nil
}

type memoryWriter[A any] struct {
	items    sliceStream[A]
	finished bool
}

func (w *memoryWriter[A]) Add(item A) error {
	if w.finished {
		return errors.FinishedWriterError{}
	}
	w.items = append(w.items, item)
	return nil
}

func (w *memoryWriter[A]) Extend(items []A) error {
	if w.finished {
		return errors.FinishedWriterError{}
	}
	w.items = append(w.items, items...)
	return nil
}

func (w *memoryWriter[A]) Finish() (tange.Stream[A], error) {
	if w.finished {
		return nil, errors.FinishedWriterError{}
	}
	w.finished = true
	return w.items, nil
}

// sliceStream is a completed in-memory artifact
type sliceStream[A any] []A

func (s sliceStream[A]) Stream() ([]A, error) {
	return s, nil
}
