package helper

import "fmt"

// NewError wraps err with a trace describing the failed step.
// The returned error unwraps to err, so errors.Is and errors.As keep working.
func NewError(trace string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", trace, err)
}
