package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

type countingValidator struct {
	calls   int
	message string
}

func (c *countingValidator) validate(model.Input) error {
	c.calls++
	if c.message == "" {
		return nil
	}
	return errors.New(c.message)
}

func TestValidateField_NoValidators(t *testing.T) {
	field := model.Field{Name: "title", Value: model.Text("")}
	if msg, failed := validation.ValidateField(field, model.MustFields(field)); failed {
		t.Fatalf("expected no error, got %q", msg)
	}
}

func TestValidateField_FirstFailureWins(t *testing.T) {
	pass := &countingValidator{}
	first := &countingValidator{message: "first"}
	second := &countingValidator{message: "second"}

	field := model.Field{
		Name:       "title",
		Value:      model.Text("x"),
		Validators: []model.Validator{pass.validate, first.validate, second.validate},
	}

	msg, failed := validation.ValidateField(field, model.MustFields(field))
	if !failed || msg != "first" {
		t.Fatalf("expected first failure, got %q (failed=%v)", msg, failed)
	}
	if pass.calls != 1 || first.calls != 1 {
		t.Fatalf("expected leading validators called once, got %d/%d", pass.calls, first.calls)
	}
	if second.calls != 0 {
		t.Fatalf("validator after first failure invoked %d times", second.calls)
	}
}

func TestValidateField_ReceivesValueFieldAndData(t *testing.T) {
	var got model.Input
	field := model.Field{
		Name:  "confirm",
		Value: model.Text("secret"),
		Validators: []model.Validator{func(in model.Input) error {
			got = in
			return nil
		}},
	}
	data := model.MustFields(model.Field{Name: "password", Value: model.Text("secret")}, field)

	validation.ValidateField(field, data)

	if got.Value.String() != "secret" || got.Field.Name != "confirm" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if v, ok := got.Data.Value("password"); !ok || v.String() != "secret" {
		t.Fatalf("expected full form data, got %+v", got.Data.Names())
	}
}

func TestValidateField_BlankMessageUsesDefault(t *testing.T) {
	field := model.Field{
		Name:       "title",
		Validators: []model.Validator{func(model.Input) error { return errors.New("  ") }},
	}
	msg, failed := validation.ValidateField(field, model.MustFields(field))
	if !failed || msg != validation.DefaultMessage {
		t.Fatalf("expected default message, got %q", msg)
	}
}

func TestValidateData_OnlyFailingKeys(t *testing.T) {
	data := model.MustFields(
		model.Field{Name: "name", Value: model.Text("Ada"), Validators: []model.Validator{validation.Required("")}},
		model.Field{Name: "email", Value: model.Text(""), Validators: []model.Validator{validation.Required("Email is required")}},
		model.Field{Name: "bio"},
	)

	errs := validation.ValidateData(data)
	want := validation.ErrorMap{"email": "Email is required"}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if _, ok := errs["name"]; ok {
		t.Fatalf("valid field should not have a key")
	}

	again := validation.ValidateData(data)
	if diff := cmp.Diff(errs, again); diff != "" {
		t.Fatalf("validation is not idempotent (-first +second):\n%s", diff)
	}
}

func TestHasErrors(t *testing.T) {
	tests := []struct {
		name string
		errs validation.ErrorMap
		want bool
	}{
		{name: "nil", errs: nil, want: false},
		{name: "empty", errs: validation.ErrorMap{}, want: false},
		{name: "blank value", errs: validation.ErrorMap{"a": ""}, want: false},
		{name: "message", errs: validation.ErrorMap{"a": "x"}, want: true},
		{name: "mixed", errs: validation.ErrorMap{"a": "", "b": "y"}, want: true},
		{name: "form level", errs: validation.FormLevel("server down"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validation.HasErrors(tt.errs); got != tt.want {
				t.Fatalf("HasErrors(%v) = %v, want %v", tt.errs, got, tt.want)
			}
		})
	}
}
