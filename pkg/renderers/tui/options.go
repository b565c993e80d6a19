package tui

import "github.com/rs/zerolog"

// DefaultMaxAttempts bounds how often failing fields are prompted again.
const DefaultMaxAttempts = 3

// Theme captures optional prefixes applied to printed messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme returns the prefixes used when no theme is configured.
func DefaultTheme() Theme {
	return Theme{InfoPrefix: "", ErrorPrefix: "✗ "}
}

// Option configures a Session or the summary Renderer.
type Option func(*settings)

type settings struct {
	driver      PromptDriver
	maxAttempts int
	theme       Theme
	logger      zerolog.Logger
}

func newSettings(options []Option) settings {
	cfg := settings{
		maxAttempts: DefaultMaxAttempts,
		theme:       DefaultTheme(),
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver(nil)
	}
	return cfg
}

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(cfg *settings) {
		if driver != nil {
			cfg.driver = driver
		}
	}
}

// WithMaxAttempts bounds the submit attempts of a session. Values below one
// are ignored.
func WithMaxAttempts(n int) Option {
	return func(cfg *settings) {
		if n > 0 {
			cfg.maxAttempts = n
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(cfg *settings) {
		cfg.theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *settings) {
		cfg.logger = logger
	}
}
