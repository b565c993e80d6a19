package form

// KeyEnter is the key code whose default handling PreventEnter suppresses.
const KeyEnter = 13

// KeyEvent is the slice of a keyboard event PreventEnter needs.
type KeyEvent interface {
	CharCode() int
	KeyCode() int
	PreventDefault()
}

// PreventEnter calls PreventDefault when the event's key is Enter. The key
// is the char code, else the key code, else zero. It reports whether the
// default was prevented.
func PreventEnter(ev KeyEvent) bool {
	if ev == nil {
		return false
	}
	key := ev.CharCode()
	if key == 0 {
		key = ev.KeyCode()
	}
	if key != KeyEnter {
		return false
	}
	ev.PreventDefault()
	return true
}

// Keypress is a plain KeyEvent value for presentation layers without a
// native event type.
type Keypress struct {
	Char      int
	Code      int
	Prevented bool
}

func (k *Keypress) CharCode() int { return k.Char }

func (k *Keypress) KeyCode() int { return k.Code }

func (k *Keypress) PreventDefault() { k.Prevented = true }
