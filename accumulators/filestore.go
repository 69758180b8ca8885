package accumulators

import (
	"fmt"
	"os"
	"path/filepath"

	uuid "github.com/gofrs/uuid"

	"github.com/tomzhang/tange"
	"github.com/tomzhang/tange/errors"
)

// FileStore is an Accumulator which spills written elements to a file under
// a configured root directory, serialized as a single blob by a Codec. Each
// finished session creates a new file named tange-<uuid>, so completed
// artifacts are immutable and process-wide unique. A FileStore which never
// went through a write session has no backing file and streams as an empty
// sequence, modeling "valid but unfilled" rather than an error.
//
// Writes are all-or-nothing per session: nothing touches disk before Finish.
// Reads decode the whole blob before any element is available.
type FileStore[A any] struct {
	root  string
	codec tange.Codec[A]
	name  string // path of the backing file; empty if never written
}

// NewFileStore produces a FileStore Accumulator spilling sessions under
// root, serialized with codec. The root directory must exist.
func NewFileStore[A any](root string, codec tange.Codec[A]) *FileStore[A] {
	return &FileStore[A]{root: root, codec: codec}
}

// Name returns the path of this artifact's backing file, or "" if no write
// session has completed
func (s *FileStore[A]) Name() string {
	return s.name
}

// Writer starts a fresh write session, buffering elements in memory until
// Finish serializes them to a new file
func (s *FileStore[A]) Writer() (tange.ValueWriter[A], error) {
	return &fileWriter[A]{root: s.root, codec: s.codec}, nil
}

// Stream materializes the written element sequence by decoding the full
// backing blob. A FileStore with no backing file streams as empty.
func (s *FileStore[A]) Stream() ([]A, error) {
	if s.name == "" {
		return []A{}, nil
	}
	blob, err := os.ReadFile(s.name)
	if err != nil {
		return nil, errors.StoreReadError{Target: s.name, Cause: err}
	}
	return s.codec.Decode(blob)
}

type fileWriter[A any] struct {
	root     string
	codec    tange.Codec[A]
	buffer   []A
	finished bool
}

func (w *fileWriter[A]) Add(item A) error {
	if w.finished {
		return errors.FinishedWriterError{}
	}
	w.buffer = append(w.buffer, item)
	return nil
}

func (w *fileWriter[A]) Extend(items []A) error {
	if w.finished {
		return errors.FinishedWriterError{}
	}
	w.buffer = append(w.buffer, items...)
	return nil
}

func (w *fileWriter[A]) Finish() (tange.Stream[A], error) {
	if w.finished {
		return nil, errors.FinishedWriterError{}
	}
	w.finished = true
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.StoreWriteError{Target: w.root, Cause: err}
	}
	name := filepath.Join(w.root, fmt.Sprintf("tange-%s", id))
	blob, err := w.codec.Encode(w.buffer)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(name, blob, 0644); err != nil {
		return nil, errors.StoreWriteError{Target: name, Cause: err}
	}
	return &FileStore[A]{root: w.root, codec: w.codec, name: name}, nil
}
