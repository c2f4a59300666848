package game

import "fmt"

// KeyKind distinguishes the three inputs a word board understands.
type KeyKind int

const (
	KeyLetter KeyKind = iota
	KeyBackspace
	KeyEnter
)

// Key is one parsed key press.
type Key struct {
	Kind   KeyKind
	Letter byte // set for KeyLetter, lowercase
}

// ParseKey translates a raw key name from a keyboard event or on-screen key.
// Accepts "Enter"/"↵", "Backspace"/"⌫" and single ASCII letters in any case.
func ParseKey(raw string) (Key, error) {
	switch raw {
	case "Enter", "enter", "↵":
		return Key{Kind: KeyEnter}, nil
	case "Backspace", "backspace", "⌫":
		return Key{Kind: KeyBackspace}, nil
	}
	if len(raw) == 1 {
		c := raw[0]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c >= 'a' && c <= 'z' {
			return Key{Kind: KeyLetter, Letter: c}, nil
		}
	}
	return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, raw)
}
