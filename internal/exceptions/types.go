package exceptions

import (
	"fmt"
	"net/http"
	"time"
)

type ServiceError struct {
	StatusCode int
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

func (se *ServiceError) Unwrap() error {
	return se.Cause
}

type RequestError interface {
	ToServiceError() *ServiceError
	Error() string
}

type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find a %s with id: %s", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusNotFound,
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

// ValidationError rejects user supplied input before anything leaves the process.
type ValidationError struct {
	Message string
}

func (ve *ValidationError) Error() string {
	return ve.Message
}

func (ve *ValidationError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusBadRequest,
		Cause:      ve,
	}
}

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf(format, args...),
	}
}

// TimeoutError is returned when the recipe API loses the race against the
// configured request timeout.
type TimeoutError struct {
	Duration time.Duration
}

func (te *TimeoutError) Error() string {
	return fmt.Sprintf("Request took too long! Timeout after %s", te.Duration)
}

func (te *TimeoutError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusGatewayTimeout,
		Cause:      te,
	}
}

func Timeout(duration time.Duration) *TimeoutError {
	return &TimeoutError{
		Duration: duration,
	}
}

// ApiError carries a non-success status from the recipe API along with the
// message the API supplied.
type ApiError struct {
	StatusCode int
	Message    string
}

func (ae *ApiError) Error() string {
	return fmt.Sprintf("%d %s", ae.StatusCode, ae.Message)
}

func (ae *ApiError) ToServiceError() *ServiceError {
	statusCode := http.StatusBadGateway
	if ae.StatusCode >= 400 && ae.StatusCode < 500 {
		statusCode = ae.StatusCode
	}
	return &ServiceError{
		StatusCode: statusCode,
		Cause:      ae,
	}
}

func Api(statusCode int, message string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
	}
}

type InternalServerError struct {
	Message string
}

func (ie *InternalServerError) Error() string {
	return ie.Message
}

func (ie *InternalServerError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Cause:      ie,
	}
}

func InternalServer(message string) *InternalServerError {
	return &InternalServerError{
		Message: message,
	}
}
