package config

import "fmt"

// ConfigurationError is fatal to initialization; the refresher stays inert and never retries.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := e.Reason
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "configuration error: " + msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func invalid(field, reason string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason, Err: err}
}
