package services

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError covers transport failures and timeouts before a response
// arrived.
type NetworkError struct {
	URL       string
	RequestID string
	Err       error
}

func (failure *NetworkError) Error() string {
	return fmt.Sprintf("request %s to %s failed: %v", failure.RequestID, failure.URL, failure.Err)
}

func (failure *NetworkError) Unwrap() error {
	return failure.Err
}

// RemoteProcessingError is a non-2xx answer from the backend.
type RemoteProcessingError struct {
	URL        string
	RequestID  string
	StatusCode int
}

func (failure *RemoteProcessingError) Error() string {
	return fmt.Sprintf("backend returned %d for %s (request %s)", failure.StatusCode, failure.URL, failure.RequestID)
}

// DataShapeError is a 2xx response whose body does not decode into the
// expected shape.
type DataShapeError struct {
	URL string
	Err error
}

func (failure *DataShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s: %v", failure.URL, failure.Err)
}

func (failure *DataShapeError) Unwrap() error {
	return failure.Err
}

func isNotFound(err error) bool {
	var remote *RemoteProcessingError
	return errors.As(err, &remote) && remote.StatusCode == http.StatusNotFound
}
