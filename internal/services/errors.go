package services

import "fmt"

// ValidationError reports a malformed request. It is raised before the
// upstream API is contacted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigError reports a missing or unusable upstream credential.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// UpstreamError wraps any failure while calling the completion API:
// network errors, auth rejections, quota limits, malformed responses.
// They are all surfaced the same way; the relay never retries.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream completion failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
