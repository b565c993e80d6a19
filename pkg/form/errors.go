package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	// ErrSubmitterRequired is returned by New when no SubmitFunc is given.
	ErrSubmitterRequired = errors.New("form: submit function is required")
	// ErrSubmitInFlight is returned by Submit while a previous attempt has
	// not resolved yet.
	ErrSubmitInFlight = errors.New("form: submission already in progress")
	// ErrSubmitPanicked is returned by Submit when the submit function
	// panicked. The panic is published as the form-level error.
	ErrSubmitPanicked = errors.New("form: submit function panicked")
)

// ValidationError rejects a submit attempt that failed local validation.
// Errors holds exactly the field-keyed map produced by the pipeline.
type ValidationError struct {
	Errors validation.ErrorMap
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "form: validation failed"
	}
	return fmt.Sprintf("form: validation failed for %d field(s)", len(e.Errors))
}
