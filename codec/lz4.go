package codec

import (
	"bytes"

	"github.com/pierrec/lz4"

	"github.com/tomzhang/tange"
	"github.com/tomzhang/tange/errors"
)

// LZ4 is a Codec which compresses another Codec's blob with the lz4
// compression algorithm. Useful for spilling large partitions to disk.
type LZ4[A any] struct {
	inner tange.Codec[A]
}

// NewLZ4 produces an LZ4 Codec wrapping inner
func NewLZ4[A any](inner tange.Codec[A]) *LZ4[A] {
	return &LZ4[A]{inner: inner}
}

// Encode serializes a full element sequence into one compressed blob
func (c *LZ4[A]) Encode(items []A) ([]byte, error) {
	blob, err := c.inner.Encode(items)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	compressor := lz4.NewWriter(&buf)
	if _, err := compressor.Write(blob); err != nil {
		return nil, errors.EncodeError{Cause: err}
	}
	if err := compressor.Close(); err != nil {
		return nil, errors.EncodeError{Cause: err}
	}
	return buf.Bytes(), nil
}

// Decode decompresses and deserializes a blob produced by Encode
func (c *LZ4[A]) Decode(blob []byte) ([]A, error) {
	decompressor := lz4.NewReader(bytes.NewReader(blob))
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(decompressor); err != nil {
		return nil, errors.DecodeError{Cause: err}
	}
	return c.inner.Decode(buf.Bytes())
}
