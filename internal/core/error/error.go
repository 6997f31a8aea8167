package errx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// ClassifierErrorMessage describes a failed call to the remote classifier.
	ClassifierErrorMessage = "classifier unavailable"
	// KafkaErrorMessage describes a failed publish to Kafka.
	KafkaErrorMessage = "kafka publish failed"
	// BadRequestMessage describes invalid caller input.
	BadRequestMessage = "invalid request"
)

// ErrClassifierUnavailable marks a transport or service failure of the
// remote classifier (including timeouts). A turn that hits it either
// degrades or fails; the session always survives.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// BadRequest wraps a validation failure of caller input.
func BadRequest(err error) *AppError {
	return New(err, http.StatusBadRequest, BadRequestMessage)
}

// WrapRedis maps Redis errors to AppError with appropriate status codes.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(err, http.StatusNotFound, RedisNotFoundMessage)
	}
	return New(err, http.StatusBadGateway, RedisErrorMessage)
}

// WrapClassifier marks err as a classifier outage so callers can match it
// with errors.Is(err, ErrClassifierUnavailable).
func WrapClassifier(stage string, err error) error {
	if err == nil {
		return nil
	}
	return New(fmt.Errorf("%s: %w: %w", stage, ErrClassifierUnavailable, err), http.StatusBadGateway, ClassifierErrorMessage)
}

// WrapKafka wraps a Kafka producer error.
func WrapKafka(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, KafkaErrorMessage)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an AppError.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the safe message carried by err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return SystemErrorMessage
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
