package sheet

import (
	"errors"
	"fmt"
)

// ErrTransport marks network and decode failures on either endpoint.
var ErrTransport = errors.New("transport failure")

// RejectionError is a success=false answer from the sheet. Message is shown
// to the user verbatim.
type RejectionError struct {
	Action  Action
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s rejected", e.Action)
	}
	return fmt.Sprintf("%s rejected: %s", e.Action, e.Message)
}

// ValidationError is raised before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorKind groups errors for presentation.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindTransport
	KindRejection
	KindValidation
	KindOther
)

// Kind classifies err into one of the board's error kinds.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var rej *RejectionError
	if errors.As(err, &rej) {
		return KindRejection
	}
	var val *ValidationError
	if errors.As(err, &val) {
		return KindValidation
	}
	if errors.Is(err, ErrTransport) {
		return KindTransport
	}
	return KindOther
}

// UserMessage renders err the way the board shows it: rejections and
// validation failures verbatim, transport problems as a generic notice.
func UserMessage(err error) string {
	switch Kind(err) {
	case KindNone:
		return ""
	case KindRejection:
		var rej *RejectionError
		errors.As(err, &rej)
		if rej.Message != "" {
			return rej.Message
		}
		return "요청이 거절되었습니다."
	case KindValidation:
		var val *ValidationError
		errors.As(err, &val)
		return val.Message
	case KindTransport:
		return "네트워크 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	default:
		return err.Error()
	}
}
