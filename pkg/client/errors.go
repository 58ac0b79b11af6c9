package client

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by New when the configuration is unusable.
var ErrInvalidConfig = errors.New("invalid client config")

// ErrInvalidUTF8 is wrapped by DecodeError when a body is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("response body is not valid UTF-8")

// TransportError reports a failed request: the request could not be built,
// the network call failed, or the API answered with a non-2xx status.
type TransportError struct {
	Page       int
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error on page %d (status %d): %v", e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error on page %d: %v", e.Page, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that does not match the page shape.
type DecodeError struct {
	Page int
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode page %d: %v", e.Page, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// classOf maps an error returned by FetchPage to its metrics label.
func classOf(err error) ErrorClass {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if transportErr.StatusCode != 0 {
			return ErrorClassStatus
		}
		return ErrorClassTransport
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return ErrorClassDecode
	}

	return ""
}
