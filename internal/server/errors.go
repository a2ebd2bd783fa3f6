// Package server provides the HTTP API of the CloudFlex assistant.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cloudflex/assistant/internal/chat"
	"github.com/cloudflex/assistant/internal/ingestion"
	"github.com/cloudflex/assistant/internal/interview"
)

// Messages shown for failures the visitor cannot fix.
const (
	genericFailure = "Something went wrong. Please try again."
	resumeFailure  = "Something went wrong while processing your resume. Please try again."
)

// ErrInvalidCredentials indicates invalid admin login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrStoreUnavailable is returned by lead endpoints when no database is configured.
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "lead storage is not configured"
}

// ErrAdminDisabled is returned by admin endpoints when no admin account is configured.
type ErrAdminDisabled struct{}

func (e *ErrAdminDisabled) Error() string {
	return "admin access is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		tooLarge    *ingestion.FileTooLargeError
		unsupported *ingestion.UnsupportedTypeError
		extraction  *ingestion.ExtractionError
		stage       *interview.StageError
	)

	switch err.(type) {
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrStoreUnavailable, *ErrAdminDisabled:
		return http.StatusServiceUnavailable
	}

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	case errors.As(err, &stage):
		return http.StatusConflict
	case errors.Is(err, chat.ErrSessionNotFound), errors.Is(err, interview.ErrInterviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrReplyPending):
		return http.StatusConflict
	case errors.Is(err, chat.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, chat.ErrTooManySessions), errors.Is(err, interview.ErrTooManyInterviews):
		return http.StatusServiceUnavailable
	case errors.Is(err, interview.ErrEmptyAnswer):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text sent to clients. Internal failures are
// reduced to a generic message.
func publicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusUnprocessableEntity:
		return resumeFailure
	case http.StatusInternalServerError:
		return genericFailure
	}
	return err.Error()
}
