// Package errors provides structured error handling for the lvgo bridge.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Kind identifies the category of a bridge error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindInit indicates an operation before initialization, a double
	// initialization, or a failed native library load.
	KindInit
	// KindStale indicates an operation attempted on a destroyed native object.
	KindStale
	// KindInvalidParent indicates an object creation under a destroyed parent.
	KindInvalidParent
	// KindAlloc indicates native allocation exhaustion.
	KindAlloc
	// KindDriver indicates a display or input driver contract violation.
	KindDriver
	// KindNative indicates the loaded native library misbehaved (missing
	// symbol, version skew, malformed event record).
	KindNative
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindStale:
		return "stale"
	case KindInvalidParent:
		return "invalid-parent"
	case KindAlloc:
		return "alloc"
	case KindDriver:
		return "driver"
	case KindNative:
		return "native"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BridgeError represents a structured error in the lvgo bridge.
type BridgeError struct {
	// Op is the operation that failed (e.g., "lvgl.Obj.SetSize").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error, if captured.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BridgeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// New creates a BridgeError wrapping err.
func New(op string, kind Kind, err error) *BridgeError {
	return &BridgeError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// Newf creates a BridgeError from a format string.
func Newf(op string, kind Kind, format string, args ...any) *BridgeError {
	return New(op, kind, fmt.Errorf(format, args...))
}

// KindOf walks err's chain and returns the Kind of the outermost BridgeError,
// or KindUnknown if none is found.
func KindOf(err error) Kind {
	var be *BridgeError
	if stderrors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// IsStale reports whether err is a use-after-destroy handle error.
func IsStale(err error) bool { return KindOf(err) == KindStale }

// IsInvalidParent reports whether err is a creation-under-destroyed-parent error.
func IsInvalidParent(err error) bool { return KindOf(err) == KindInvalidParent }

// IsAlloc reports whether err is a native allocation failure.
func IsAlloc(err error) bool { return KindOf(err) == KindAlloc }

// IsDriver reports whether err is a driver contract violation.
func IsDriver(err error) bool { return KindOf(err) == KindDriver }

// IsInit reports whether err is an initialization-order error.
func IsInit(err error) bool { return KindOf(err) == KindInit }

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "lvgl.eventTrampoline").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic was recovered.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s [panic]: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("[panic]: %v", e.Value)
}
