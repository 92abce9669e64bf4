package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure surfaced to the user
type Kind int

const (
	KindUnknown Kind = iota
	KindUnsupportedFileType
	KindUnreachableSource
	KindAcquisitionFailed
	KindTranscriptionFailed
	KindSummarizationFailed
	KindDeliveryFailed
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedFileType:
		return "UnsupportedFileType"
	case KindUnreachableSource:
		return "UnreachableSource"
	case KindAcquisitionFailed:
		return "AcquisitionFailed"
	case KindTranscriptionFailed:
		return "TranscriptionFailed"
	case KindSummarizationFailed:
		return "SummarizationFailed"
	case KindDeliveryFailed:
		return "DeliveryFailed"
	default:
		return "Unknown"
	}
}

// ExitCode is the process status reported for a failure of this kind
func (k Kind) ExitCode() int {
	if k == KindUnknown {
		return 1
	}
	return 10 + int(k)
}

// Sentinels for errors.Is; any *Error of the same kind matches.
var (
	ErrUnsupportedFileType = &Error{Kind: KindUnsupportedFileType}
	ErrUnreachableSource   = &Error{Kind: KindUnreachableSource}
	ErrAcquisitionFailed   = &Error{Kind: KindAcquisitionFailed}
	ErrTranscriptionFailed = &Error{Kind: KindTranscriptionFailed}
	ErrSummarizationFailed = &Error{Kind: KindSummarizationFailed}
	ErrDeliveryFailed      = &Error{Kind: KindDeliveryFailed}
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can compare against the sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op string, err error, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

func UnsupportedFileType(op string, err error, message string) *Error {
	return newError(KindUnsupportedFileType, op, err, message)
}

func UnreachableSource(op string, err error, message string) *Error {
	return newError(KindUnreachableSource, op, err, message)
}

func AcquisitionFailed(op string, err error, message string) *Error {
	return newError(KindAcquisitionFailed, op, err, message)
}

func TranscriptionFailed(op string, err error, message string) *Error {
	return newError(KindTranscriptionFailed, op, err, message)
}

func SummarizationFailed(op string, err error, message string) *Error {
	return newError(KindSummarizationFailed, op, err, message)
}

func DeliveryFailed(op string, err error, message string) *Error {
	return newError(KindDeliveryFailed, op, err, message)
}
