package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/live-ls/ls-fulfillment/pkg/status"
)

// ApplicationError carries the HTTP status code and machine readable status
// alongside the human readable message, so handlers can translate any error
// returned from the lower layers without inspecting its origin.
type ApplicationError struct {
	HTTPStatusCode int
	Status         string
	Message        string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func New(httpStatusCode int, applicationStatus string, message string) error {
	return &ApplicationError{
		HTTPStatusCode: httpStatusCode,
		Status:         applicationStatus,
		Message:        message,
	}
}

// Destruct extracts the application error out of err. Errors that do not
// originate from this package are mapped to an internal server error.
func Destruct(err error) *ApplicationError {
	var ae *ApplicationError
	if errors.As(err, &ae) {
		return ae
	}

	return &ApplicationError{
		HTTPStatusCode: http.StatusInternalServerError,
		Status:         status.INTERNAL_SERVER_ERROR,
		Message:        err.Error(),
	}
}
