package envelope

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// TimestampLayout is the layout of the envelope timestamp field
const TimestampLayout = "2006-01-02 15:04:05"

// ErrEmptyBody is returned when there is nothing to decode
var ErrEmptyBody = errors.New("empty response body")

// Envelope represents the standard response wrapper of the event API
type Envelope[T any] struct {
	Status    int     `json:"status"`
	Message   string  `json:"message"`
	Data      *T      `json:"data"`
	Timestamp *string `json:"timestamp,omitempty"`
}

// IsSuccess reports whether the status is in the 2xx range
func (e *Envelope[T]) IsSuccess() bool {
	return e.Status >= 200 && e.Status <= 299
}

// IsError reports whether the status is 400 or above
func (e *Envelope[T]) IsError() bool {
	return e.Status >= 400
}

// Decode parses a JSON envelope carrying a payload of type T
func Decode[T any](body []byte) (*Envelope[T], error) {
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return &env, nil
}

// --- Envelope Builders ---

// Raw is the untyped envelope emitted by servers
type Raw = Envelope[any]

func stamp() *string {
	ts := time.Now().Format(TimestampLayout)
	return &ts
}

// Success creates a success envelope with data
func Success(status int, message string, data any) *Raw {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Raw{
		Status:    status,
		Message:   message,
		Data:      &data,
		Timestamp: stamp(),
	}
}

// OK creates a 200 envelope
func OK(message string, data any) *Raw {
	return Success(http.StatusOK, message, data)
}

// Created creates a 201 envelope
func Created(message string, data any) *Raw {
	return Success(http.StatusCreated, message, data)
}

// Error creates an error envelope with a null payload
func Error(status int, message string) *Raw {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Raw{
		Status:    status,
		Message:   message,
		Timestamp: stamp(),
	}
}

// --- Common Error Envelopes ---

// BadRequest creates a bad request error envelope
func BadRequest(message string) *Raw {
	return Error(http.StatusBadRequest, message)
}

// NotFound creates a not found error envelope
func NotFound(message string) *Raw {
	if message == "" {
		message = "Resource not found"
	}
	return Error(http.StatusNotFound, message)
}

// MethodNotAllowed creates a method not allowed error envelope
func MethodNotAllowed(message string) *Raw {
	if message == "" {
		message = "Method not allowed"
	}
	return Error(http.StatusMethodNotAllowed, message)
}

// InternalError creates an internal server error envelope
func InternalError(message string) *Raw {
	if message == "" {
		message = "An internal error occurred"
	}
	return Error(http.StatusInternalServerError, message)
}
