// internal/game/types.go
//
// Core type definitions for the word game.
// Defines:
//   - Mark: per-letter verdict of a committed guess.
//   - Status: where the word session is in its lifecycle.
//   - Row / State: render-ready snapshots of a session.

package game

import "fmt"

const (
	Rows = 6 // attempts per puzzle
	Cols = 5 // letters per attempt
)

// Mark is the verdict for one letter. Marks are ordered:
// MarkAbsent < MarkPresent < MarkCorrect.
type Mark int

const (
	MarkAbsent  Mark = iota // letter not in the answer (or all copies used)
	MarkPresent             // letter in the answer at another position
	MarkCorrect             // letter at this exact position
)

func (m Mark) String() string {
	switch m {
	case MarkAbsent:
		return "absent"
	case MarkPresent:
		return "present"
	case MarkCorrect:
		return "correct"
	}
	return fmt.Sprintf("Mark(%d)", int(m))
}

// MarshalText encodes a Mark as its name so JSON carries "correct" etc.
func (m Mark) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText is the inverse of MarshalText.
func (m *Mark) UnmarshalText(b []byte) error {
	switch string(b) {
	case "absent":
		*m = MarkAbsent
	case "present":
		*m = MarkPresent
	case "correct":
		*m = MarkCorrect
	default:
		return fmt.Errorf("game: unknown mark %q", b)
	}
	return nil
}

// Status is the coarse session state.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Row is one line of the board. Marks is nil until the row is committed.
type Row struct {
	Letters string `json:"letters"`
	Marks   []Mark `json:"marks,omitempty"`
}

// State is a read-only snapshot of a word session.
type State struct {
	Board    []Row           `json:"board"`
	Row      int             `json:"row"`
	Col      int             `json:"col"`
	Status   Status          `json:"status"`
	Locked   bool            `json:"locked"`
	Keyboard map[string]Mark `json:"keyboard"`
	Message  string          `json:"message,omitempty"`
	Answer   string          `json:"answer,omitempty"` // revealed once the game is over
}
