package game

import "github.com/samber/lo"

// Keyboard remembers the best verdict seen for each letter across all
// committed guesses of a session. A letter's mark never goes down.
type Keyboard map[byte]Mark

// Apply folds one scored guess into the keyboard.
func (k Keyboard) Apply(guess string, marks []Mark) {
	for i := 0; i < len(guess) && i < len(marks); i++ {
		c := guess[i]
		if cur, seen := k[c]; !seen || marks[i] > cur {
			k[c] = marks[i]
		}
	}
}

// Snapshot returns the keyboard keyed by letter strings, for rendering.
func (k Keyboard) Snapshot() map[string]Mark {
	return lo.MapKeys(k, func(_ Mark, c byte) string { return string(rune(c)) })
}
