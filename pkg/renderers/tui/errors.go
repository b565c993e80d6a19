package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrAttemptsExhausted is returned when fields still fail validation
	// after the configured number of attempts.
	ErrAttemptsExhausted = errors.New("tui: validation attempts exhausted")
	// ErrControllerRequired is returned by NewSession without a controller.
	ErrControllerRequired = errors.New("tui: controller is required")
)
