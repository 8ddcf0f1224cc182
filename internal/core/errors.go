package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means no code could be resolved from the request.
	ErrEmptyInput = errors.New("no code to analyze found")
	// ErrMalformedModelOutput is recovered inside the parser and never leaves it.
	ErrMalformedModelOutput = errors.New("model returned malformed output")
)

// ConfigError is returned before any side effect when a required setting, such as
// the model credential, is absent.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "Misconfigured: " + e.Reason
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// UpstreamFetchError reports that a referenced GitHub resource could not be retrieved.
type UpstreamFetchError struct {
	Resource string
	URL      string
	Err      error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s %s: %v", e.Resource, e.URL, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// UpstreamServiceError is a non-success response from the model provider.
type UpstreamServiceError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s API error: %d %s", e.Provider, e.StatusCode, e.Body)
}

// StoreError wraps any persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
