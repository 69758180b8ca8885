package tange

// A Codec serializes a complete element sequence to a single opaque blob
// (and the inverse). Codecs frame their own output; tange adds no header or
// version information of its own around the encoded bytes.
type Codec[A any] interface {
	Encode(items []A) ([]byte, error) // Encode serializes a full element sequence into one blob
	Decode(blob []byte) ([]A, error)  // Decode deserializes a blob produced by Encode
}
