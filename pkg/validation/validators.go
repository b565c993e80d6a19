package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Func adapts a predicate into a Validator failing with message whenever ok
// returns false.
func Func(message string, ok func(model.Input) bool) model.Validator {
	return func(in model.Input) error {
		if ok == nil || ok(in) {
			return nil
		}
		return errors.New(message)
	}
}

// Required fails when the value is falsy: an empty (or blank) string or a
// false boolean.
func Required(message string) model.Validator {
	if message == "" {
		message = "This field is required"
	}
	return func(in model.Input) error {
		if in.Value.IsBool() {
			if in.Value.Truthy() {
				return nil
			}
			return errors.New(message)
		}
		if strings.TrimSpace(in.Value.String()) == "" {
			return errors.New(message)
		}
		return nil
	}
}

// Checked fails unless a checkbox value coerces to true.
func Checked(message string) model.Validator {
	if message == "" {
		message = "This box must be checked"
	}
	return func(in model.Input) error {
		if in.Value.Checked() {
			return nil
		}
		return errors.New(message)
	}
}

// MinLength fails when a non-empty value has fewer than n characters. Empty
// values are left to Required.
func MinLength(n int, message string) model.Validator {
	if message == "" {
		message = fmt.Sprintf("Must be at least %d characters", n)
	}
	return func(in model.Input) error {
		value := in.Value.String()
		if value == "" || utf8.RuneCountInString(value) >= n {
			return nil
		}
		return errors.New(message)
	}
}

// MaxLength fails when the value has more than n characters.
func MaxLength(n int, message string) model.Validator {
	if message == "" {
		message = fmt.Sprintf("Must be at most %d characters", n)
	}
	return func(in model.Input) error {
		if utf8.RuneCountInString(in.Value.String()) <= n {
			return nil
		}
		return errors.New(message)
	}
}

// Pattern fails when a non-empty value does not match re.
func Pattern(re *regexp.Regexp, message string) model.Validator {
	if message == "" {
		message = "Invalid format"
	}
	return func(in model.Input) error {
		value := in.Value.String()
		if value == "" || re == nil || re.MatchString(value) {
			return nil
		}
		return errors.New(message)
	}
}

// Email fails when a non-empty value is not a bare email address.
func Email(message string) model.Validator {
	if message == "" {
		message = "Invalid email address"
	}
	return func(in model.Input) error {
		value := strings.TrimSpace(in.Value.String())
		if value == "" {
			return nil
		}
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return errors.New(message)
		}
		return nil
	}
}

// OneOf fails when a non-empty value is not one of the allowed options. With
// no explicit options the field's own option list is used.
func OneOf(message string, options ...string) model.Validator {
	if message == "" {
		message = "Select a valid option"
	}
	return func(in model.Input) error {
		value := in.Value.String()
		if value == "" {
			return nil
		}
		allowed := options
		if len(allowed) == 0 {
			allowed = in.Field.Options
		}
		for _, option := range allowed {
			if option == value {
				return nil
			}
		}
		return errors.New(message)
	}
}

// Matches fails when the value differs from the value of the other field,
// read from the full form data.
func Matches(other, message string) model.Validator {
	if message == "" {
		message = fmt.Sprintf("Must match %s", other)
	}
	return func(in model.Input) error {
		target, ok := in.Data.Value(other)
		if !ok || target.String() != in.Value.String() {
			return errors.New(message)
		}
		return nil
	}
}
