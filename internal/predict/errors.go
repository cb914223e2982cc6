package predict

import (
	"errors"
	"fmt"
)

// Messages shown to the user. Only one of them is visible at a time.
const (
	MsgEmptyTicker     = "Please enter a stock ticker symbol"
	MsgPredictionFail  = "Failed to get prediction"
	MsgConnectionError = "Connection error. Make sure the backend server is running."
)

var errEmptyResponse = errors.New("empty response")

// ValidationError is returned for input that never reaches the network
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ApplicationError means the service answered with a non-success status
type ApplicationError struct {
	StatusCode int
	Message    string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("prediction service returned %d: %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport failure or an unreadable response body.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "prediction request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UnhealthyError means the service answered its health probe with a
// status other than healthy
type UnhealthyError struct {
	Status string
}

func (e *UnhealthyError) Error() string {
	return fmt.Sprintf("service reported status %q", e.Status)
}

// UserMessage maps err to the text displayed in the error region.
// Technical details of network failures are never shown.
func UserMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		if appErr.Message == "" {
			return MsgPredictionFail
		}
		return appErr.Message
	}

	return MsgConnectionError
}
