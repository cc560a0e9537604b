package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const statusError = "error"

// ErrorResponse is what services hand back to routes: an error that
// knows its HTTP status and serializes to the error envelope.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	code    int
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e *simpleError) Error() string { return e.Message }
func (e *simpleError) Code() int     { return e.code }

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{code: code, Status: statusError, Message: message}
}

var (
	InternalServerError              = NewSimple(http.StatusInternalServerError, "Internal server error")
	MalformedBodyError               = NewSimple(http.StatusBadRequest, "Malformed request body")
	InvalidDoctorError               = NewSimple(http.StatusBadRequest, "Doctor not found")
	InvalidDateTimeError             = NewSimple(http.StatusBadRequest, "Date and time must be formatted as YYYY-MM-DD and HH:MM")
	InvalidTimeOfDayError            = NewSimple(http.StatusBadRequest, "Time must be formatted as HH:MM")
	UnsupportedNotificationTypeError = NewSimple(http.StatusBadRequest, "Unsupported notification type")
	EmailDeliveryError               = NewSimple(http.StatusInternalServerError, "Failed to send email")
	TooManyRequestsError             = NewSimple(http.StatusTooManyRequests, "Too many requests")
)

func NewMissingParamError(param string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", param))
}

// FromValidationError turns validator/v10 failures into a single 400.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return NewSimple(http.StatusBadRequest, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "isodate":
		return fmt.Sprintf("%s must be formatted as YYYY-MM-DD", fe.Field())
	case "hhmm":
		return fmt.Sprintf("%s must be formatted as HH:MM", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
