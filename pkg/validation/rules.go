package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Canonical rule identifiers accepted by FromRule.
const (
	RuleRequired  = "required"
	RuleChecked   = "checked"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleEmail     = "email"
	RuleOneOf     = "oneOf"
	RuleMatches   = "matches"
)

// ErrUnknownRule is returned by FromRule for unrecognised rule kinds.
var ErrUnknownRule = errors.New("validation: unknown rule")

// Rule is the declarative form of a built-in validator. Length bounds use
// Params["value"], patterns Params["pattern"], matches Params["field"] and
// oneOf a comma separated Params["options"].
type Rule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// FromRule builds the validator described by rule.
func FromRule(rule Rule) (model.Validator, error) {
	switch strings.TrimSpace(rule.Kind) {
	case RuleRequired:
		return Required(rule.Message), nil
	case RuleChecked:
		return Checked(rule.Message), nil
	case RuleEmail:
		return Email(rule.Message), nil
	case RuleMinLength:
		n, err := intParam(rule, "value")
		if err != nil {
			return nil, err
		}
		return MinLength(n, rule.Message), nil
	case RuleMaxLength:
		n, err := intParam(rule, "value")
		if err != nil {
			return nil, err
		}
		return MaxLength(n, rule.Message), nil
	case RulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return nil, fmt.Errorf("validation: rule %s requires params.pattern", rule.Kind)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("validation: rule %s: %w", rule.Kind, err)
		}
		return Pattern(re, rule.Message), nil
	case RuleOneOf:
		var options []string
		for _, option := range strings.Split(rule.Params["options"], ",") {
			if trimmed := strings.TrimSpace(option); trimmed != "" {
				options = append(options, trimmed)
			}
		}
		return OneOf(rule.Message, options...), nil
	case RuleMatches:
		other := strings.TrimSpace(rule.Params["field"])
		if other == "" {
			return nil, fmt.Errorf("validation: rule %s requires params.field", rule.Kind)
		}
		return Matches(other, rule.Message), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule.Kind)
	}
}

// FromRules builds validators for rules, preserving order.
func FromRules(rules []Rule) ([]model.Validator, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	out := make([]model.Validator, 0, len(rules))
	for idx, rule := range rules {
		validator, err := FromRule(rule)
		if err != nil {
			return nil, fmt.Errorf("validation: rule %d: %w", idx, err)
		}
		out = append(out, validator)
	}
	return out, nil
}

func intParam(rule Rule, key string) (int, error) {
	raw := strings.TrimSpace(rule.Params[key])
	if raw == "" {
		return 0, fmt.Errorf("validation: rule %s requires params.%s", rule.Kind, key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("validation: rule %s: params.%s: %w", rule.Kind, key, err)
	}
	return n, nil
}
