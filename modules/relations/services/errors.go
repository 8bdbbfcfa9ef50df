package services

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/iota-uz/relations/pkg/serrors"
)

const (
	CodeNotFound      = "RELATIONS_NOT_FOUND"
	CodeDuplicate     = "RELATIONS_DUPLICATE"
	CodeCycle         = "RELATIONS_CYCLE"
	CodeSelfReference = "RELATIONS_SELF_REFERENCE"
	CodeDepthExceeded = "RELATIONS_DEPTH_EXCEEDED"
	CodeConflict      = "RELATIONS_CONFLICT"
	CodeInvalidBody   = "RELATIONS_INVALID_BODY"
	CodeInternal      = "RELATIONS_INTERNAL"
)

// ServiceError is the error shape every service method returns for
// domain failures. Status carries the equivalent HTTP status so callers
// embedding these services behind a transport do not re-classify.
type ServiceError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}

func errNotFound(what string) *ServiceError {
	return newServiceError(http.StatusNotFound, CodeNotFound, what+" not found", nil)
}

func errDuplicate(message string) *ServiceError {
	return newServiceError(http.StatusConflict, CodeDuplicate, message, nil)
}

func errCycle(message string) *ServiceError {
	return newServiceError(http.StatusUnprocessableEntity, CodeCycle, message, nil)
}

func errSelfReference(message string) *ServiceError {
	return newServiceError(http.StatusUnprocessableEntity, CodeSelfReference, message, nil)
}

func errDepthExceeded(message string) *ServiceError {
	return newServiceError(http.StatusUnprocessableEntity, CodeDepthExceeded, message, nil)
}

func errConflict(message string, cause error) *ServiceError {
	return newServiceError(http.StatusConflict, CodeConflict, message, cause)
}

func errValidation(message string) *ServiceError {
	return newServiceError(http.StatusBadRequest, CodeInvalidBody, message, nil)
}

func errValidationFields(fields serrors.ValidationErrors) *ServiceError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return errValidation("invalid fields: " + strings.Join(names, ", "))
}

func errInternal(cause error) *ServiceError {
	return newServiceError(http.StatusInternalServerError, CodeInternal, "internal error", cause)
}

// AsServiceError unwraps err to a *ServiceError if one is in the chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
