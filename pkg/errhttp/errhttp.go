// Package errhttp maps domain errors to HTTP responses.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"

	"github.com/ghuser/cheeseshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/cheeseshop/pkg/validator"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	"github.com/ghuser/cheeseshop/services/cheese/domain/views"
)

// WriteError writes the JSON response for err. Field errors become a 422
// with per-field messages. Unrecognized errors are reported to Sentry and
// answered with a bare 500.
func WriteError(w http.ResponseWriter, err error) {
	var fields views.FieldErrors
	if errors.As(err, &fields) {
		pkgvalidator.WriteFieldErrors(w, fields)
		return
	}

	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		sentry.CaptureException(err)
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, true))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, cheesedomain.ErrMalformedPayload):
		return http.StatusBadRequest
	case errors.Is(err, cheesedomain.ErrCheeseListingNotFound),
		errors.Is(err, cheesedomain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, cheesedomain.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, cheesedomain.ErrInvalidCheeseListing),
		errors.Is(err, cheesedomain.ErrInvalidUser):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
