// Package errs defines the error classes raised by the code generator.
//
// Each class is a sentinel used as a cockroachdb/errors mark, so callers can
// classify a failure with errors.Is no matter how many times it was wrapped.
package errs

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrUnrecognizedNode is raised when the traversal meets a model node it
	// has no emission rule for.
	ErrUnrecognizedNode = errors.New("unrecognized model node")
	// ErrArchiveDecode is raised when an input archive cannot be turned into
	// a model graph.
	ErrArchiveDecode = errors.New("archive decode failed")
	// ErrBufferContract is raised when non-text data is appended raw.
	ErrBufferContract = errors.New("output buffer contract violated")
	// ErrSinkState is raised on open/write/close calls out of order.
	ErrSinkState = errors.New("file sink used out of order")
	// ErrUsage is raised when required CLI input is missing.
	ErrUsage = errors.New("usage error")
)

// UnrecognizedNode builds an ErrUnrecognizedNode for the given node value.
func UnrecognizedNode(node any) error {
	return errors.Mark(errors.Newf("no emission rule for node of type %T", node), ErrUnrecognizedNode)
}

// ArchiveDecode wraps err as an archive decode failure for path.
func ArchiveDecode(err error, path string) error {
	return errors.Mark(errors.Wrapf(err, "decode archive %s", path), ErrArchiveDecode)
}

// ArchiveDecodef builds a new archive decode failure.
func ArchiveDecodef(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrArchiveDecode)
}

// BufferContract builds an ErrBufferContract for the given offending value.
func BufferContract(v any) error {
	return errors.Mark(errors.Newf("raw append expects text, got %T", v), ErrBufferContract)
}

// SinkState builds an ErrSinkState with the given message.
func SinkState(msg string) error {
	return errors.Mark(errors.New(msg), ErrSinkState)
}

// Usage builds an ErrUsage carrying a hint for the user.
func Usage(msg, hint string) error {
	return errors.WithHint(errors.Mark(errors.New(msg), ErrUsage), hint)
}
