package puzzle

import (
	"sync"
	"time"

	"github.com/robalobadob/dailypuzzles/internal/game"
	"github.com/robalobadob/dailypuzzles/internal/riddle"
)

// Session is one page-load worth of play. Exactly one of word/riddle is set.
// The mutex serializes actions so each one completes before the next starts.
type Session struct {
	ID      string
	Today   Today
	Created time.Time

	mu     sync.Mutex
	word   *game.Session
	riddle *riddle.Session
	streak int // streak after this session's solve, 0 if unsolved
}

// Date is the calendar day the session plays.
func (s *Session) Date() string { return s.Today.Date }

// SessionState is a render-ready snapshot of a Session.
type SessionState struct {
	ID     string        `json:"sessionId"`
	Today  Today         `json:"today"`
	Word   *game.State   `json:"word,omitempty"`
	Riddle *riddle.State `json:"riddle,omitempty"`
	Streak int           `json:"streak,omitempty"` // set after this session's solve
}
