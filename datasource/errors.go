package datasource

import "fmt"

// ProviderError is returned when the weather API answers with a non-success status.
// Message carries the provider's own explanation, e.g. "city not found".
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}
