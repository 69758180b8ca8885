package errors

import (
	"fmt"
)

// EncodeError occurs when a Codec fails to serialize an element sequence
type EncodeError struct{ Cause error }

// Error returns a textual representation of this EncodeError
func (e EncodeError) Error() string {
	return fmt.Sprintf("Unable to encode element sequence: %v", e.Cause)
}

// Unwrap returns the underlying codec failure
func (e EncodeError) Unwrap() error {
	return e.Cause
}

// DecodeError occurs when a Codec fails to deserialize a blob
type DecodeError struct{ Cause error }

// Error returns a textual representation of this DecodeError
func (e DecodeError) Error() string {
	return fmt.Sprintf("Unable to decode element sequence: %v", e.Cause)
}

// Unwrap returns the underlying codec failure
func (e DecodeError) Unwrap() error {
	return e.Cause
}

// StoreWriteError occurs when a storage backend fails to commit a write session
type StoreWriteError struct {
	Target string
	Cause  error
}

// Error returns a textual representation of this StoreWriteError
func (e StoreWriteError) Error() string {
	return fmt.Sprintf("Unable to write session to %s: %v", e.Target, e.Cause)
}

// Unwrap returns the underlying storage failure
func (e StoreWriteError) Unwrap() error {
	return e.Cause
}

// StoreReadError occurs when a storage backend fails to stream a completed artifact
type StoreReadError struct {
	Target string
	Cause  error
}

// Error returns a textual representation of this StoreReadError
func (e StoreReadError) Error() string {
	return fmt.Sprintf("Unable to read artifact from %s: %v", e.Target, e.Cause)
}

// Unwrap returns the underlying storage failure
func (e StoreReadError) Unwrap() error {
	return e.Cause
}

// FinishedWriterError occurs when a ValueWriter is used after Finish
type FinishedWriterError struct{}

// Error returns a textual representation of this FinishedWriterError
func (e FinishedWriterError) Error() string {
	return "Write session is already finished"
}

// TaskPanicError occurs when a deferred task panics during execution. The
// scheduler recovers the panic and aborts the execution with this error.
type TaskPanicError struct {
	Value interface{}
	Trace string // stack trace captured at the recovery site, if available
}

// Error returns a textual representation of this TaskPanicError
func (e TaskPanicError) Error() string {
	if e.Trace != "" {
		return fmt.Sprintf("Task aborted: %v\n%s", e.Value, e.Trace)
	}
	return fmt.Sprintf("Task aborted: %v", e.Value)
}

// Unwrap returns the panic value if it was itself an error
func (e TaskPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
