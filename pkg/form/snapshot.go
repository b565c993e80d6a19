package form

import (
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

// Snapshot is an immutable view of the controller state handed to
// presentation layers and listeners.
type Snapshot struct {
	Phase   Phase
	Loading bool
	Posted  bool
	Fields  model.Fields
	Errors  validation.ErrorMap
	Classes Classes

	widgets *widgets.Registry
}

// FormError returns the form-level message.
func (s Snapshot) FormError() string {
	return s.Errors.Form()
}

// FieldError returns the message published for the named field.
func (s Snapshot) FieldError(name string) string {
	return s.Errors.Field(name)
}

// Widget resolves the named field's widget with the controller's registry.
func (s Snapshot) Widget(name string) (widgets.Resolution, bool) {
	field, ok := s.Fields.Get(name)
	if !ok {
		return widgets.Resolution{}, false
	}
	return s.widgets.Resolve(field), true
}

// Values returns the flattened field values.
func (s Snapshot) Values() Values {
	return Flatten(s.Fields, s.widgets)
}
