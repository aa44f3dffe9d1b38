package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two upstream conditions the caller must be able
// to tell apart from a generic failure.
var (
	ErrOrgNotFound = errors.New("organization not found")
	ErrRateLimited = errors.New("rate limit exceeded, add a GitHub token to increase the limit")
)

// ValidationError reports a bad run configuration. It is raised before
// any upstream call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
