// internal/game/session.go
//
// Word-mode session state machine.
//
//   Filling(row, col) --letter--> Filling(row, col+1)        col < Cols
//   Filling(row, col) --delete--> Filling(row, col-1)        col > 0
//   Filling(row, Cols) --submit--> Won | Lost | Filling(row+1, 0)
//
// Rejected submissions (row not full, word not accepted) leave the board
// untouched. Once Won or Lost, every operation returns ErrGameOver.

package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGameOver         = errors.New("game is over")
	ErrNotEnoughLetters = errors.New("not enough letters")
	ErrNotInWordList    = errors.New("not in word list")
	ErrInvalidKey       = errors.New("invalid key")
	ErrInvalidAnswer    = errors.New("answer must be 5 letters a-z")
)

const (
	MsgNotEnoughLetters = "Not enough letters."
	MsgNotInWordList    = "Not in word list."
	MsgWon              = "Nice! You solved today’s word."
)

// Dictionary decides which guesses may be submitted.
type Dictionary interface {
	IsAllowed(word string) bool
}

// Result describes one committed guess.
type Result struct {
	Guess   string `json:"guess"`
	Marks   []Mark `json:"marks"`
	Status  Status `json:"status"`
	Solved  bool   `json:"solved"` // true only for the guess that won the game
	Message string `json:"message,omitempty"`
}

// Session is one play-through of the daily word. Not safe for concurrent use.
type Session struct {
	answer string
	dict   Dictionary

	letters [Rows][Cols]byte
	marks   [Rows][]Mark
	row     int
	col     int
	status  Status

	keyboard Keyboard
	message  string
}

// NewSession starts a session at Filling(0, 0).
func NewSession(answer string, dict Dictionary) (*Session, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if len(answer) != Cols || !IsLetters(answer) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAnswer, answer)
	}
	return &Session{
		answer:   answer,
		dict:     dict,
		status:   StatusPlaying,
		keyboard: Keyboard{},
	}, nil
}

// Status reports the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Locked reports whether the session accepts no more input.
func (s *Session) Locked() bool { return s.status != StatusPlaying }

// PressLetter types c into the next free slot. A full row ignores it.
func (s *Session) PressLetter(c rune) error {
	if s.Locked() {
		return ErrGameOver
	}
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'z' {
		return ErrInvalidKey
	}
	if s.col >= Cols {
		return nil
	}
	s.letters[s.row][s.col] = byte(c)
	s.col++
	return nil
}

// Backspace clears the last filled slot of the current row.
func (s *Session) Backspace() error {
	if s.Locked() {
		return ErrGameOver
	}
	if s.col == 0 {
		return nil
	}
	s.col--
	s.letters[s.row][s.col] = 0
	return nil
}

// Submit commits the current row.
func (s *Session) Submit() (*Result, error) {
	if s.Locked() {
		return nil, ErrGameOver
	}
	if s.col < Cols {
		s.message = MsgNotEnoughLetters
		return nil, ErrNotEnoughLetters
	}
	guess := string(s.letters[s.row][:])
	if s.dict != nil && !s.dict.IsAllowed(guess) {
		s.message = MsgNotInWordList
		return nil, ErrNotInWordList
	}

	marks := Score(guess, s.answer)
	s.marks[s.row] = marks
	s.keyboard.Apply(guess, marks)

	res := &Result{Guess: guess, Marks: marks}
	switch {
	case allCorrect(marks):
		s.status = StatusWon
		s.message = MsgWon
		res.Solved = true
	case s.row == Rows-1:
		s.status = StatusLost
		s.message = LostMessage(s.answer)
	default:
		s.row++
		s.col = 0
		s.message = ""
	}
	res.Status = s.status
	res.Message = s.message
	return res, nil
}

// SubmitWord replaces the current row with word and submits it.
// A rejected word leaves the row as it was; only the message changes.
func (s *Session) SubmitWord(word string) (*Result, error) {
	if s.Locked() {
		return nil, ErrGameOver
	}
	word = strings.ToLower(strings.TrimSpace(word))
	switch {
	case !IsLetters(word) || len(word) > Cols:
		s.message = MsgNotInWordList
		return nil, ErrNotInWordList
	case len(word) < Cols:
		s.message = MsgNotEnoughLetters
		return nil, ErrNotEnoughLetters
	case s.dict != nil && !s.dict.IsAllowed(word):
		s.message = MsgNotInWordList
		return nil, ErrNotInWordList
	}
	for s.col > 0 {
		_ = s.Backspace()
	}
	for i := 0; i < len(word); i++ {
		_ = s.PressLetter(rune(word[i]))
	}
	return s.Submit()
}

// Press applies one parsed key. Only Enter produces a Result.
func (s *Session) Press(k Key) (*Result, error) {
	switch k.Kind {
	case KeyEnter:
		return s.Submit()
	case KeyBackspace:
		return nil, s.Backspace()
	default:
		return nil, s.PressLetter(rune(k.Letter))
	}
}

// State returns a render-ready snapshot.
func (s *Session) State() State {
	board := make([]Row, Rows)
	for r := 0; r < Rows; r++ {
		board[r] = Row{Letters: strings.TrimRight(string(s.letters[r][:]), "\x00")}
		if s.marks[r] != nil {
			board[r].Marks = append([]Mark(nil), s.marks[r]...)
		}
	}
	st := State{
		Board:    board,
		Row:      s.row,
		Col:      s.col,
		Status:   s.status,
		Locked:   s.Locked(),
		Keyboard: s.keyboard.Snapshot(),
		Message:  s.message,
	}
	if s.Locked() {
		st.Answer = s.answer
	}
	return st
}

// LostMessage is the feedback shown when all rows are used.
func LostMessage(answer string) string {
	return "Out of tries. The word was “" + strings.ToUpper(answer) + ".”"
}

// Feedback maps a session error to the message shown to the player.
func Feedback(err error) string {
	switch {
	case errors.Is(err, ErrNotEnoughLetters):
		return MsgNotEnoughLetters
	case errors.Is(err, ErrNotInWordList):
		return MsgNotInWordList
	case errors.Is(err, ErrGameOver):
		return "The game is over. Come back tomorrow!"
	case errors.Is(err, ErrInvalidKey):
		return "Letters only."
	}
	return ""
}
