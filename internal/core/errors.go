package core

import "fmt"

type McavailError struct {
	Message string
	Cause   error
}

func (e *McavailError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *McavailError) Unwrap() error {
	return e.Cause
}

type ConfigurationError struct {
	*McavailError
}

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		McavailError: &McavailError{Message: message, Cause: cause},
	}
}

// NetworkError wraps a transport failure for a single lookup. It never
// aborts a run; the affected name is classified as taken.
type NetworkError struct {
	*McavailError
	Name string
}

func NewNetworkError(name string, cause error) *NetworkError {
	return &NetworkError{
		McavailError: &McavailError{Message: fmt.Sprintf("Network error checking %s", name), Cause: cause},
		Name:         name,
	}
}

type DataError struct {
	*McavailError
}

func NewDataError(message string, cause error) *DataError {
	return &DataError{
		McavailError: &McavailError{Message: message, Cause: cause},
	}
}

type ValidationError struct {
	*McavailError
}

func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{
		McavailError: &McavailError{Message: message, Cause: cause},
	}
}
