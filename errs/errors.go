// Package errs defines the sentinel error values shared across wavescope
// packages. Callers match them with errors.Is; most call sites wrap them with
// additional context using fmt.Errorf("%w: ...").
package errs

import "errors"

// Ingestion errors. All of them belong to the malformed-input class: a trace
// source that triggers one aborts the whole load and leaves any previously
// published trace untouched.
var (
	// ErrOutOfOrderTimestamp indicates a transition older than the last one
	// appended for the same signal.
	ErrOutOfOrderTimestamp = errors.New("transition timestamp out of order")

	// ErrWidthMismatch indicates a value whose bit width differs from the
	// signal's declared width.
	ErrWidthMismatch = errors.New("value width does not match signal width")

	// ErrKindMismatch indicates a value variant (vector, integer, real,
	// string) incompatible with the signal's declared kind.
	ErrKindMismatch = errors.New("value kind does not match signal kind")

	// ErrDuplicateSignal indicates two signal declarations with the same
	// full hierarchical path.
	ErrDuplicateSignal = errors.New("duplicate signal path")

	// ErrInvalidWidth indicates a signal declared with a width of zero.
	ErrInvalidWidth = errors.New("invalid signal width")

	// ErrBuilderFinished indicates use of a trace builder after Build.
	ErrBuilderFinished = errors.New("trace builder already finished")

	// ErrScopeUnderflow indicates an EndScope without a matching
	// DeclareScope.
	ErrScopeUnderflow = errors.New("scope stack underflow")
)

// Query errors. Always recoverable by the caller.
var (
	// ErrNotFound indicates an unknown signal path, handle or scope.
	ErrNotFound = errors.New("not found")
)

// Lifecycle errors.
var (
	// ErrCancelled indicates an ingestion cancelled by the caller. It is a
	// normal termination toward the user but kept distinct from malformed
	// input for logging.
	ErrCancelled = errors.New("ingestion cancelled")
)

// Snapshot errors.
var (
	// ErrInvalidMagic indicates snapshot data that does not start with the
	// wavescope magic number.
	ErrInvalidMagic = errors.New("invalid snapshot magic")

	// ErrInvalidHeaderSize indicates a truncated snapshot header.
	ErrInvalidHeaderSize = errors.New("invalid snapshot header size")

	// ErrCorruptSnapshot indicates snapshot payloads that fail structural
	// validation (bad offsets, short sections, codec failures).
	ErrCorruptSnapshot = errors.New("corrupt snapshot data")

	// ErrUnsupportedVersion indicates a snapshot written by an incompatible
	// format version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// Translation errors. Decode itself never fails; these are returned by the
// strict helpers (Encode, Check) only.
var (
	// ErrUnparsableValue indicates text that cannot be encoded back into a
	// bit-vector in the requested format.
	ErrUnparsableValue = errors.New("value cannot be parsed in this format")

	// ErrFormatMismatch indicates a format that cannot represent the
	// signal's declared shape (for example Float32 on a 7-bit signal).
	ErrFormatMismatch = errors.New("format does not fit signal shape")
)
