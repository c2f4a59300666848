// internal/riddle/session.go
//
// Riddle-mode game session.
// A riddle session accepts free-text answers without limit. An answer is
// correct when its normalized form is in the riddle's accepted set. The
// first correct answer marks the session solved; later correct answers are
// reported as correct but never as a new solve.

package riddle

import (
	"github.com/samber/lo"
)

// DefaultHint is shown when no hint is registered for the riddle.
const DefaultHint = "Think simpler than you think."

const (
	MsgCorrect  = "Correct!"
	MsgTryAgain = "Not quite — try again."
)

// Outcome classifies one submission.
type Outcome string

const (
	OutcomeEmpty   Outcome = "empty"   // nothing left after normalization; no-op
	OutcomeWrong   Outcome = "wrong"   // not an accepted answer
	OutcomeCorrect Outcome = "correct" // accepted answer
)

// Result reports what a submission did.
type Result struct {
	Outcome    Outcome `json:"outcome"`
	FirstSolve bool    `json:"firstSolve"` // true only for the submission that solved the riddle
	Message    string  `json:"message,omitempty"`
}

// Session is the state of one riddle attempt. Not safe for concurrent use.
type Session struct {
	question string
	answers  []string
	accepted map[string]struct{}
	hint     string

	solved   bool
	revealed bool
	message  string
}

// State is a read-only snapshot for rendering.
type State struct {
	Question string `json:"question"`
	Solved   bool   `json:"solved"`
	Revealed bool   `json:"revealed"`
	Message  string `json:"message,omitempty"`
	Answer   string `json:"answer,omitempty"` // set once revealed
}

// New builds a session. answers[0] is the canonical, display-cased answer.
// hint may be empty, in which case DefaultHint is used.
func New(question string, answers []string, hint string) *Session {
	normalized := lo.Filter(lo.Map(answers, func(a string, _ int) string { return Normalize(a) }),
		func(a string, _ int) bool { return a != "" })
	return &Session{
		question: question,
		answers:  answers,
		accepted: lo.SliceToMap(normalized, func(a string) (string, struct{}) { return a, struct{}{} }),
		hint:     hint,
	}
}

// Submit checks an answer.
func (s *Session) Submit(input string) Result {
	guess := Normalize(input)
	if guess == "" {
		return Result{Outcome: OutcomeEmpty, Message: s.message}
	}
	if _, ok := s.accepted[guess]; !ok {
		s.message = MsgTryAgain
		return Result{Outcome: OutcomeWrong, Message: s.message}
	}
	first := !s.solved
	s.solved = true
	s.message = MsgCorrect
	return Result{Outcome: OutcomeCorrect, FirstSolve: first, Message: s.message}
}

// Hint returns the hint text and records it as the current feedback.
func (s *Session) Hint() string {
	h := s.hint
	if h == "" {
		h = DefaultHint
	}
	s.message = "Hint: " + h
	return h
}

// Reveal returns the canonical answer. It does not solve the riddle.
func (s *Session) Reveal() string {
	s.revealed = true
	s.message = "Answer: " + s.canonical()
	return s.canonical()
}

// Solved reports whether an accepted answer has been submitted.
func (s *Session) Solved() bool { return s.solved }

// State returns a snapshot of the session.
func (s *Session) State() State {
	st := State{
		Question: s.question,
		Solved:   s.solved,
		Revealed: s.revealed,
		Message:  s.message,
	}
	if s.revealed {
		st.Answer = s.canonical()
	}
	return st
}

func (s *Session) canonical() string {
	if len(s.answers) == 0 {
		return ""
	}
	return s.answers[0]
}
