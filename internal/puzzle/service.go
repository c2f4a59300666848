// internal/puzzle/service.go
//
// Core facade consumed by the UI shell.
// Responsibilities:
//   - Decide today's date, day index, mode and puzzle from an injected clock.
//   - Start word or riddle sessions for today.
//   - Route word keys/guesses and riddle answers to their sessions and turn
//     a first solve into exactly one streak update.
//   - Expose the streak, theme preference and share text.
//
// Invalid input never fails the service: it comes back as a sentinel error
// from package game (or an OutcomeEmpty/OutcomeWrong from package riddle)
// with the session unchanged.

package puzzle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailypuzzles/internal/bank"
	"github.com/robalobadob/dailypuzzles/internal/daily"
	"github.com/robalobadob/dailypuzzles/internal/game"
	"github.com/robalobadob/dailypuzzles/internal/kv"
	"github.com/robalobadob/dailypuzzles/internal/riddle"
	"github.com/robalobadob/dailypuzzles/internal/streak"
	"github.com/robalobadob/dailypuzzles/internal/theme"
)

// DefaultProductName is used in share text unless overridden.
const DefaultProductName = "Daily English Puzzles"

// ErrWrongMode is returned when a word operation hits a riddle session or vice versa.
var ErrWrongMode = errors.New("operation does not match session mode")

// Service is safe for concurrent use.
type Service struct {
	bank    *bank.Bank
	streaks *streak.Tracker
	themes  *theme.Prefs
	now     func() time.Time
	loc     *time.Location
	product string
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation pins the time zone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithProductName sets the name used in share text.
func WithProductName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.product = name
		}
	}
}

// NewService wires the core around a bank and a durable KV store.
func NewService(b *bank.Bank, store kv.Store, opts ...Option) *Service {
	s := &Service{
		bank:    b,
		streaks: streak.NewTracker(store),
		themes:  theme.NewPrefs(store),
		now:     time.Now,
		loc:     time.Local,
		product: DefaultProductName,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Today identifies the current puzzle day.
type Today struct {
	Date     string     `json:"date"`
	DayIndex int64      `json:"dayIndex"`
	Mode     daily.Mode `json:"mode"`
}

// Today reads the clock once and derives everything from that instant.
func (s *Service) Today() Today {
	now := s.now().In(s.loc)
	idx := daily.DayIndex(now)
	return Today{Date: daily.DateKey(now), DayIndex: idx, Mode: daily.SelectMode(idx)}
}

// TodayMode returns today's puzzle type.
func (s *Service) TodayMode() daily.Mode { return s.Today().Mode }

// Puzzle is the entry selected for a day. Exactly one of Word/Riddle is set.
type Puzzle struct {
	Today
	Word   string
	Riddle *bank.Riddle
}

// TodayPuzzle returns today's entry from the bank for today's mode.
func (s *Service) TodayPuzzle() Puzzle {
	return s.puzzleFor(s.Today())
}

func (s *Service) puzzleFor(t Today) Puzzle {
	p := Puzzle{Today: t}
	if t.Mode == daily.ModeWord {
		p.Word = s.bank.WordFor(t.DayIndex)
	} else {
		r := s.bank.RiddleFor(t.DayIndex)
		p.Riddle = &r
	}
	return p
}

// NewSession starts a session for today's puzzle.
func (s *Service) NewSession() (*Session, error) {
	t := s.Today()
	p := s.puzzleFor(t)
	sess := &Session{ID: uuid.NewString(), Today: t, Created: s.now()}

	switch t.Mode {
	case daily.ModeWord:
		g, err := game.NewSession(p.Word, s.bank)
		if err != nil {
			return nil, fmt.Errorf("start word session: %w", err)
		}
		sess.word = g
	default:
		hint, _ := s.bank.HintFor(p.Riddle.Canonical())
		sess.riddle = riddle.New(p.Riddle.Question, p.Riddle.Answers, hint)
	}
	log.Info().Str("session", sess.ID).Str("date", t.Date).Int64("day", t.DayIndex).Str("mode", string(t.Mode)).Msg("session started")
	return sess, nil
}

// PressKey feeds one raw key ("a", "Enter", "Backspace") to a word session.
func (s *Service) PressKey(ctx context.Context, sess *Session, raw string) (*game.Result, error) {
	k, err := game.ParseKey(raw)
	if err != nil {
		return nil, err
	}
	return s.withWord(ctx, sess, func(g *game.Session) (*game.Result, error) { return g.Press(k) })
}

// PressLetter types one letter.
func (s *Service) PressLetter(ctx context.Context, sess *Session, c rune) error {
	_, err := s.withWord(ctx, sess, func(g *game.Session) (*game.Result, error) { return nil, g.PressLetter(c) })
	return err
}

// Backspace deletes the last typed letter.
func (s *Service) Backspace(ctx context.Context, sess *Session) error {
	_, err := s.withWord(ctx, sess, func(g *game.Session) (*game.Result, error) { return nil, g.Backspace() })
	return err
}

// Submit commits the typed row.
func (s *Service) Submit(ctx context.Context, sess *Session) (*game.Result, error) {
	return s.withWord(ctx, sess, func(g *game.Session) (*game.Result, error) { return g.Submit() })
}

// SubmitGuess types a whole word into the current row and commits it.
func (s *Service) SubmitGuess(ctx context.Context, sess *Session, word string) (*game.Result, error) {
	return s.withWord(ctx, sess, func(g *game.Session) (*game.Result, error) { return g.SubmitWord(word) })
}

func (s *Service) withWord(ctx context.Context, sess *Session, fn func(*game.Session) (*game.Result, error)) (*game.Result, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.word == nil {
		return nil, ErrWrongMode
	}
	res, err := fn(sess.word)
	if err != nil {
		return nil, err
	}
	if res != nil {
		log.Debug().Str("session", sess.ID).Str("guess", res.Guess).Str("status", string(res.Status)).Msg("guess scored")
		if res.Solved {
			s.recordSolve(ctx, sess)
		}
	}
	return res, nil
}

// SubmitAnswer checks a riddle answer.
func (s *Service) SubmitAnswer(ctx context.Context, sess *Session, input string) (riddle.Result, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.riddle == nil {
		return riddle.Result{}, ErrWrongMode
	}
	res := sess.riddle.Submit(input)
	if res.FirstSolve {
		s.recordSolve(ctx, sess)
	}
	return res, nil
}

// Hint returns the riddle hint.
func (s *Service) Hint(sess *Session) (string, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.riddle == nil {
		return "", ErrWrongMode
	}
	return sess.riddle.Hint(), nil
}

// Reveal returns the riddle's canonical answer without solving it.
func (s *Service) Reveal(sess *Session) (string, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.riddle == nil {
		return "", ErrWrongMode
	}
	return sess.riddle.Reveal(), nil
}

// State snapshots a session for rendering.
func (s *Service) State(sess *Session) SessionState {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	st := SessionState{ID: sess.ID, Today: sess.Today, Streak: sess.streak}
	if sess.word != nil {
		ws := sess.word.State()
		st.Word = &ws
	}
	if sess.riddle != nil {
		rs := sess.riddle.State()
		st.Riddle = &rs
	}
	return st
}

// Streak returns the persisted streak record.
func (s *Service) Streak(ctx context.Context) (streak.Record, error) {
	return s.streaks.Load(ctx)
}

// recordSolve bumps the streak for the session's day. A storage failure
// is logged; the solve itself stands.
func (s *Service) recordSolve(ctx context.Context, sess *Session) {
	rec, err := s.streaks.RecordSolve(ctx, sess.Date())
	if err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("could not record solve")
		return
	}
	sess.streak = rec.Streak
}

// Theme returns the stored theme preference.
func (s *Service) Theme(ctx context.Context) (theme.Theme, error) { return s.themes.Get(ctx) }

// SetTheme stores a theme preference.
func (s *Service) SetTheme(ctx context.Context, t theme.Theme) error { return s.themes.Set(ctx, t) }

// ToggleTheme flips the theme preference.
func (s *Service) ToggleTheme(ctx context.Context) (theme.Theme, error) { return s.themes.Toggle(ctx) }

// ShareText composes the brag line for a solved puzzle.
func (s *Service) ShareText(mode daily.Mode, date string) string {
	return fmt.Sprintf("%s — %s — I solved the %s!", s.product, date, mode)
}
