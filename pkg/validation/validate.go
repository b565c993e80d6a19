package validation

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// DefaultMessage is reported when a validator fails with a blank message.
const DefaultMessage = "invalid value"

// ValidateField runs the field's validators in order against its current
// value and returns the message of the first failure. Validators after the
// first failure are not invoked. The boolean is false when every validator
// passed or the field declares none.
func ValidateField(field model.Field, data model.Fields) (string, bool) {
	for _, validator := range field.Validators {
		if validator == nil {
			continue
		}
		err := validator(model.Input{
			Value: field.Value,
			Field: field,
			Data:  data,
		})
		if err == nil {
			continue
		}
		message := strings.TrimSpace(err.Error())
		if message == "" {
			message = DefaultMessage
		}
		return message, true
	}
	return "", false
}

// ValidateData validates every field of data independently. Only failing
// fields appear in the result; a fully valid form yields an empty map.
func ValidateData(data model.Fields) ErrorMap {
	errs := make(ErrorMap)
	for _, name := range data.Names() {
		field, _ := data.Get(name)
		if message, failed := ValidateField(field, data); failed {
			errs[name] = message
		}
	}
	return errs
}
