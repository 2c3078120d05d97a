package api

import (
	"fmt"
	"net/url"
)

// TransportError is a network failure or a non-2xx status from the YouTube API.
type TransportError struct {
	StatusCode int    // zero when the request never got a response
	Reason     string // error message embedded in the body, if any
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("failed to fetch trending videos: %v", e.Err)
	}
	if e.Reason != "" {
		return fmt.Sprintf("YouTube API returned status code: %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("YouTube API returned status code: %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is an error descriptor YouTube embedded in a successful response.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// redactURL strips the request URL, which carries the API key, from a client error.
func redactURL(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}
