package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Err keeps the underlying cause so callers can still match it with errors.Is.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.Err
}

// Expected reports whether the failure is the caller's outcome rather than a fault of the service.
func (e *Failure) Expected() bool {
	return e.Code < http.StatusInternalServerError
}

// Wrap returns a new Failure with the given code whose message is taken from err.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    code,
		Message: err.Error(),
		Err:     err,
	}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	return Wrap(http.StatusBadRequest, err)
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	return Wrap(http.StatusInternalServerError, err)
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(err error) error {
	return Wrap(http.StatusNotFound, err)
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(err error) error {
	return Wrap(http.StatusConflict, err)
}

// ServiceUnavailable marks a transient condition the caller may retry.
func ServiceUnavailable(err error) error {
	return Wrap(http.StatusServiceUnavailable, err)
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
