package astcimage

import (
	"bytes"
	"errors"
)

// ErrorInfoSize is the capacity of an ErrorInfo in bytes, including the terminating NUL.
const ErrorInfoSize = 128

// ErrorInfo is a fixed-capacity, NUL-terminated message slot.
//
// Messages longer than ErrorInfoSize-1 bytes are truncated; the slot never grows.
type ErrorInfo struct {
	msg [ErrorInfoSize]byte
}

// SetMessage overwrites the slot with msg, truncated to ErrorInfoSize-1 bytes.
func (e *ErrorInfo) SetMessage(msg string) {
	n := copy(e.msg[:ErrorInfoSize-1], msg)
	e.msg[n] = 0
}

// Message returns the stored text.
func (e *ErrorInfo) Message() string {
	return string(e.bytes())
}

// Len returns the length of the stored text in bytes.
func (e *ErrorInfo) Len() int {
	return len(e.bytes())
}

// Reset clears the slot.
func (e *ErrorInfo) Reset() {
	e.msg = [ErrorInfoSize]byte{}
}

// Capture stores the message of err and reports whether err was non-nil.
//
// A nil err leaves the slot untouched, so a slot shared across calls keeps the last failure.
func (e *ErrorInfo) Capture(err error) bool {
	if err == nil {
		return false
	}
	e.SetMessage(err.Error())
	return true
}

func (e *ErrorInfo) bytes() []byte {
	if n := bytes.IndexByte(e.msg[:], 0); n >= 0 {
		return e.msg[:n]
	}
	return e.msg[:ErrorInfoSize-1]
}

// Kind classifies failures.
type Kind uint8

const (
	// KindNone is reported for a nil error.
	KindNone Kind = iota
	// KindInvalidInput covers bad dimensions, channel counts, component sizes and missing data.
	KindInvalidInput
	// KindConfig is an invalid quality, profile or block footprint combination.
	KindConfig
	// KindResource is a codec context allocation failure.
	KindResource
	// KindExecution is a compress or decompress failure reported by the codec.
	KindExecution
	// KindCancelled is a stop requested through the progress callback or the context.
	KindCancelled
	// KindBusy is a call on a Worker that already has a call in flight.
	KindBusy
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid input"
	case KindConfig:
		return "config"
	case KindResource:
		return "resource"
	case KindExecution:
		return "execution"
	case KindCancelled:
		return "cancelled"
	case KindBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Error is the error type returned by this package.
//
// The message lives in a fixed-size ErrorInfo. Err holds the codec or context error that caused
// the failure, if any.
type Error struct {
	Kind Kind
	Info ErrorInfo
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Info.Message()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error with the same kind and message, so the package sentinels can be used
// with errors.Is regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && bytes.Equal(e.Info.bytes(), t.Info.bytes())
}

var (
	ErrNoData                    = sentinel(KindInvalidInput, "no data")
	ErrInvalidWidth              = sentinel(KindInvalidInput, "invalid width")
	ErrInvalidHeight             = sentinel(KindInvalidInput, "invalid height")
	ErrUnsupportedComponentCount = sentinel(KindInvalidInput, "unsupported component count")
	ErrUnsupportedComponentSize  = sentinel(KindInvalidInput, "unsupported component size")
	ErrShortData                 = sentinel(KindInvalidInput, "not enough data")

	ErrConfigInit   = sentinel(KindConfig, "could not initialise config")
	ErrContextAlloc = sentinel(KindResource, "could not create context")
	ErrCompress     = sentinel(KindExecution, "could not compress image")
	ErrDecompress   = sentinel(KindExecution, "could not decompress image")
	ErrCancelled    = sentinel(KindCancelled, "task was cancelled")
	ErrWorkerBusy   = sentinel(KindBusy, "worker busy")
)

func sentinel(kind Kind, msg string) *Error {
	e := &Error{Kind: kind}
	e.Info.SetMessage(msg)
	return e
}

// newError returns a fresh copy of a sentinel carrying cause.
func newError(s *Error, cause error) error {
	return &Error{Kind: s.Kind, Info: s.Info, Err: cause}
}

// KindOf returns the Kind of err, or KindNone for nil.
//
// Errors not produced by this package are reported as KindExecution.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindExecution
}
