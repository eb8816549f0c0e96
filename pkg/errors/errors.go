// Package errors provides structured error reporting for the quill bridge.
//
// The field component itself has no recoverable-error surface: every bridge
// operation succeeds given well-typed inputs. What can fail is the plumbing
// underneath it (channel transport, payload codec, version handshake), and
// those failures are reported here rather than returned through the component
// API.
package errors

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindChannel indicates a platform channel or native host error.
	KindChannel
	// KindCodec indicates a payload encode/decode failure.
	KindCodec
	// KindVersion indicates the native host failed the minimum-version gate.
	KindVersion
	// KindDispatch indicates a deferred task could not be scheduled.
	KindDispatch
)

func (k Kind) String() string {
	switch k {
	case KindChannel:
		return "channel"
	case KindCodec:
		return "codec"
	case KindVersion:
		return "version"
	case KindDispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// Error is a structured error raised by the quill plumbing.
type Error struct {
	// Op is the operation that failed (e.g., "platform.invokeHost").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Channel is the platform channel name, if applicable.
	Channel string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("%s [%s] channel=%s: %v", e.Op, e.Kind, e.Channel, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
