package apiclient

import "fmt"

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("apiclient: %s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("apiclient: %s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
