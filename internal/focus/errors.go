package focus

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel wrapped by every ConfigurationError
var ErrConfiguration = errors.New("focus: invalid configuration")

// ConfigurationError reports an Initialize call that cannot build a navigation state.
// It is the only error the engine returns.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrConfiguration, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfiguration, e.Err}
	}
	return []error{ErrConfiguration}
}

func configError(reason string, err error) error {
	return &ConfigurationError{Reason: reason, Err: err}
}
