package personas

import "fmt"

// ConfigError represents a malformed or inconsistent persona configuration.
// Configuration errors are fatal: a run aborts before any backend call.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persona configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("persona configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
