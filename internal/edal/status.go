// internal/edal/status.go
package edal

import "errors"

// Status is the result taxonomy shared by every EDAL operation.
// Every value except StatusOK is an error in its own right.
type Status uint8

const (
	StatusOK Status = iota
	StatusNullBlock
	StatusNullReturn
	StatusNullComponentData
	StatusInvalidBlockCanary
	StatusInvalidComponentCanary
	StatusIndexInvalid
	StatusTypeUnsupported
	StatusAttributeNotFound
	StatusComponentNotFound
	StatusSizeMismatch
	StatusInsufficientResource
	StatusUnsupportedEnclosure
	StatusError
)

// Sentinels for errors.Is.
var (
	ErrNullBlock              error = StatusNullBlock
	ErrNullReturn             error = StatusNullReturn
	ErrNullComponentData      error = StatusNullComponentData
	ErrInvalidBlockCanary     error = StatusInvalidBlockCanary
	ErrInvalidComponentCanary error = StatusInvalidComponentCanary
	ErrIndexInvalid           error = StatusIndexInvalid
	ErrTypeUnsupported        error = StatusTypeUnsupported
	ErrAttributeNotFound      error = StatusAttributeNotFound
	ErrComponentNotFound      error = StatusComponentNotFound
	ErrSizeMismatch           error = StatusSizeMismatch
	ErrInsufficientResource   error = StatusInsufficientResource
	ErrUnsupportedEnclosure   error = StatusUnsupportedEnclosure
	ErrGeneric                error = StatusError
)

var statusNames = [...]string{
	StatusOK:                     "ok",
	StatusNullBlock:              "null block pointer",
	StatusNullReturn:             "null return pointer",
	StatusNullComponentData:      "null component data pointer",
	StatusInvalidBlockCanary:     "invalid block canary",
	StatusInvalidComponentCanary: "invalid component canary",
	StatusIndexInvalid:           "component type index invalid",
	StatusTypeUnsupported:        "component type unsupported",
	StatusAttributeNotFound:      "attribute not found",
	StatusComponentNotFound:      "component not found",
	StatusSizeMismatch:           "size mismatch",
	StatusInsufficientResource:   "insufficient resource",
	StatusUnsupportedEnclosure:   "unsupported enclosure",
	StatusError:                  "error",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown status"
}

func (s Status) Error() string {
	return "edal: " + s.String()
}

// Code exposes the status as a numeric code for status blocks.
func (s Status) Code() uint16 {
	return uint16(s)
}

// StatusOf maps an error back to a Status.
// nil is StatusOK; errors that carry no Status are StatusError.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusError
}

// worse keeps the first failure seen by a sweep.
func worse(cur, next error) error {
	if cur != nil {
		return cur
	}
	return next
}
