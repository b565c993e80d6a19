package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Value holds either text or a boolean. The zero Value is the empty string.
type Value struct {
	text   string
	flag   bool
	isBool bool
}

// Text wraps a string value.
func Text(s string) Value {
	return Value{text: s}
}

// Bool wraps a boolean value.
func Bool(b bool) Value {
	return Value{flag: b, isBool: true}
}

// ValueOf converts an arbitrary decoded value (for example from YAML or an
// HTTP form) into a Value. Booleans stay booleans, nil becomes the empty
// string and everything else is formatted with fmt.
func ValueOf(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Text("")
	case Value:
		return typed
	case bool:
		return Bool(typed)
	case string:
		return Text(typed)
	default:
		return Text(fmt.Sprint(typed))
	}
}

// IsBool reports whether v stores a boolean.
func (v Value) IsBool() bool {
	return v.isBool
}

// String returns the textual form of v. Booleans format as "true"/"false".
func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.flag)
	}
	return v.text
}

// Truthy coerces v to a boolean: booleans are returned as is, text is true
// when non-empty.
func (v Value) Truthy() bool {
	if v.isBool {
		return v.flag
	}
	return v.text != ""
}

// Checked reads v as a checkbox state. Booleans are returned as is. Text is
// unchecked when blank or one of "false", "0", "no", "off" (any case), and
// checked otherwise.
func (v Value) Checked() bool {
	if v.isBool {
		return v.flag
	}
	switch strings.ToLower(strings.TrimSpace(v.text)) {
	case "", "false", "0", "no", "off":
		return false
	default:
		return true
	}
}

// Raw returns the underlying string or bool.
func (v Value) Raw() any {
	if v.isBool {
		return v.flag
	}
	return v.text
}

// Equal reports whether both values hold the same representation.
func (v Value) Equal(other Value) bool {
	return v == other
}

// MarshalJSON encodes the underlying string or bool.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw())
}

// UnmarshalJSON accepts any JSON scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}
