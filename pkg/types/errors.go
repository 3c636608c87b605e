package types

import "fmt"

// InvalidOptionError indicates a malformed or unknown option in a catalog,
// fatal to the call that triggered it.
type InvalidOptionError struct {
	Name   string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %q: %s", e.Name, e.Reason)
}

// ConfigurationError indicates missing or inconsistent widget wiring,
// detected at render time.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// UsageError indicates missing required configuration at construction time.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %s", e.Reason)
}
