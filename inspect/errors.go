package inspect

import (
	"errors"
	"fmt"
)

// ErrMissingSeparator marks a form-urlencoded segment without a '='.
var ErrMissingSeparator = errors.New("missing '=' separator")

// BodyParseError reports a body that could not be decoded for its category. When Key is
// set the failure is limited to a single form entry.
type BodyParseError struct {
	Category ContentTypeCategory
	Key      string
	Err      error
}

func (e *BodyParseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("unable to parse %s body entry '%s': %v", e.Category, e.Key, e.Err)
	}
	return fmt.Sprintf("unable to parse %s body: %v", e.Category, e.Err)
}

func (e *BodyParseError) Unwrap() error {
	return e.Err
}
