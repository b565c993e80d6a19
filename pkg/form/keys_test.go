package form_test

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/form"
)

func TestPreventEnter(t *testing.T) {
	tests := []struct {
		name string
		ev   form.Keypress
		want bool
	}{
		{name: "char code enter", ev: form.Keypress{Char: 13}, want: true},
		{name: "key code enter", ev: form.Keypress{Code: 13}, want: true},
		{name: "char code wins", ev: form.Keypress{Char: 97, Code: 13}, want: false},
		{name: "other key", ev: form.Keypress{Code: 9}, want: false},
		{name: "no key", ev: form.Keypress{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tt.ev
			got := form.PreventEnter(&ev)
			if got != tt.want || ev.Prevented != tt.want {
				t.Fatalf("PreventEnter = %v (prevented=%v), want %v", got, ev.Prevented, tt.want)
			}
		})
	}

	if form.PreventEnter(nil) {
		t.Fatalf("nil event should not be prevented")
	}
}
