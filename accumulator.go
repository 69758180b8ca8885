package tange

// An Accumulator is a storage capability which can start fresh write sessions
// for sequences of elements. The medium backing a session (in-process memory,
// a file on disk, a database table) is the Accumulator's business; callers
// interact only through the write-then-read protocol: open a ValueWriter,
// feed it elements, Finish it, and stream the completed artifact back.
// Completed artifacts are immutable and may be read any number of times.
type Accumulator[A any] interface {
	Writer() (ValueWriter[A], error) // Writer starts a fresh write session against this Accumulator's medium
}

// A ValueWriter is an in-progress write session produced by an Accumulator.
// Elements are accumulated with Add or Extend and committed with Finish,
// which yields the completed, readable artifact as a Stream. A ValueWriter
// must not be used after Finish; writes are all-or-nothing per session, with
// no partial flush before Finish.
type ValueWriter[A any] interface {
	Add(item A) error           // Add appends a single element to this session
	Extend(items []A) error     // Extend appends a slice of elements to this session, in order
	Finish() (Stream[A], error) // Finish commits the session and returns the completed artifact
}

// A Stream is a completed, readable artifact which reproduces the element
// sequence written through a ValueWriter, in the order it was written.
type Stream[A any] interface {
	Stream() ([]A, error) // Stream materializes the full element sequence
}

// WriteSlice writes items through a fresh session of acc and returns the
// completed artifact.
func WriteSlice[A any](acc Accumulator[A], items []A) (Stream[A], error) {
	w, err := acc.Writer()
	if err != nil {
		return nil, err
	}
	if err := w.Extend(items); err != nil {
		return nil, err
	}
	return w.Finish()
}
