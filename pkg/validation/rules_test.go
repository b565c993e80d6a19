package validation_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func TestBuiltinValidators(t *testing.T) {
	data := model.MustFields(
		model.Field{Name: "password", Value: model.Text("hunter22")},
	)

	tests := []struct {
		name      string
		validator model.Validator
		field     model.Field
		wantFail  bool
	}{
		{name: "required empty", validator: validation.Required(""), field: model.Field{Value: model.Text(" ")}, wantFail: true},
		{name: "required set", validator: validation.Required(""), field: model.Field{Value: model.Text("x")}},
		{name: "required false bool", validator: validation.Required(""), field: model.Field{Value: model.Bool(false)}, wantFail: true},
		{name: "checked", validator: validation.Checked(""), field: model.Field{Value: model.Bool(true)}},
		{name: "unchecked", validator: validation.Checked(""), field: model.Field{Value: model.Bool(false)}, wantFail: true},
		{name: "min length short", validator: validation.MinLength(3, ""), field: model.Field{Value: model.Text("ab")}, wantFail: true},
		{name: "min length empty skipped", validator: validation.MinLength(3, ""), field: model.Field{Value: model.Text("")}},
		{name: "max length", validator: validation.MaxLength(3, ""), field: model.Field{Value: model.Text("abcd")}, wantFail: true},
		{name: "pattern", validator: validation.Pattern(regexp.MustCompile(`^\d+$`), ""), field: model.Field{Value: model.Text("12a")}, wantFail: true},
		{name: "email ok", validator: validation.Email(""), field: model.Field{Value: model.Text("ada@example.com")}},
		{name: "email display name", validator: validation.Email(""), field: model.Field{Value: model.Text("Ada <ada@example.com>")}, wantFail: true},
		{name: "one of field options", validator: validation.OneOf(""), field: model.Field{Options: []string{"a", "b"}, Value: model.Text("c")}, wantFail: true},
		{name: "one of explicit", validator: validation.OneOf("", "c"), field: model.Field{Value: model.Text("c")}},
		{name: "matches", validator: validation.Matches("password", ""), field: model.Field{Value: model.Text("hunter22")}},
		{name: "matches differs", validator: validation.Matches("password", ""), field: model.Field{Value: model.Text("hunter2")}, wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(model.Input{Value: tt.field.Value, Field: tt.field, Data: data})
			if (err != nil) != tt.wantFail {
				t.Fatalf("validator error = %v, wantFail %v", err, tt.wantFail)
			}
		})
	}
}

func TestFromRules(t *testing.T) {
	validators, err := validation.FromRules([]validation.Rule{
		{Kind: validation.RuleRequired, Message: "Name is required"},
		{Kind: validation.RuleMinLength, Params: map[string]string{"value": "3"}},
	})
	if err != nil {
		t.Fatalf("from rules: %v", err)
	}
	field := model.Field{Name: "name", Value: model.Text(""), Validators: validators}
	msg, failed := validation.ValidateField(field, model.MustFields(field))
	if !failed || msg != "Name is required" {
		t.Fatalf("expected required message, got %q", msg)
	}
}

func TestFromRule_Errors(t *testing.T) {
	if _, err := validation.FromRule(validation.Rule{Kind: "luhn"}); !errors.Is(err, validation.ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
	if _, err := validation.FromRule(validation.Rule{Kind: validation.RuleMaxLength}); err == nil {
		t.Fatalf("expected missing param error")
	}
	if _, err := validation.FromRule(validation.Rule{Kind: validation.RulePattern, Params: map[string]string{"pattern": "("}}); err == nil {
		t.Fatalf("expected invalid regexp error")
	}
}
