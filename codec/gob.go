// Package codec provides concrete Codec implementations for serializing
// element sequences to single opaque blobs.
package codec

import (
	"bytes"
	"encoding/gob"

	"github.com/tomzhang/tange/errors"
)

// Gob is a Codec which serializes a full element sequence as one gob blob.
// Element types must be gob-encodable (exported fields, no functions or
// channels).
type Gob[A any] struct{}

// NewGob produces a Gob Codec
func NewGob[A any]() *Gob[A] {
	return &Gob[A]{}
}

// Encode serializes a full element sequence into one blob
func (c *Gob[A]) Encode(items []A) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(items); err != nil {
		return nil, errors.EncodeError{Cause: err}
	}
	return buf.Bytes(), nil
}

// Decode deserializes a blob produced by Encode
func (c *Gob[A]) Decode(blob []byte) ([]A, error) {
	var items []A
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&items); err != nil {
		return nil, errors.DecodeError{Cause: err}
	}
	return items, nil
}
