// internal/bank/bank.go
//
// Puzzle Bank: the two fixed, ordered lists the daily puzzle is drawn from.
//
// Responsibilities:
//   - Hold the word bank (5-letter answers) and the riddle bank.
//   - Hold the set of accepted guesses (answers ∪ allowed list).
//   - Index both banks by day: bank[dayIndex mod len(bank)].
//   - Map a riddle's normalized canonical answer to its hint.
//
// Loading (Load):
//   1. PUZZLE_WORDS_FILE / PUZZLE_ALLOWED_FILE replace the embedded word lists.
//      If only PUZZLE_ALLOWED_FILE is set, embedded answers are kept.
//   2. PUZZLE_RIDDLES_FILE replaces the embedded riddles (same JSON shape).
//   3. Otherwise the embedded defaults in package assets are used.
//
// Constraints:
//   • Words are 5 lowercase letters a–z; anything else is dropped with a warning.
//   • Riddles need a question and at least one answer that normalizes non-empty.
//   • Both banks must be non-empty.

package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/dailypuzzles/assets"
	"github.com/robalobadob/dailypuzzles/internal/daily"
	"github.com/robalobadob/dailypuzzles/internal/game"
	"github.com/robalobadob/dailypuzzles/internal/riddle"
)

// WordLength is the fixed length of every word-mode answer and guess.
const WordLength = 5

var (
	ErrNoWords   = errors.New("bank: word list is empty")
	ErrNoRiddles = errors.New("bank: riddle list is empty")
)

// Riddle is one riddle entry. Answers[0] is the canonical, display-cased answer.
type Riddle struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Hint     string   `json:"hint,omitempty"`
}

// Canonical returns the first accepted answer.
func (r Riddle) Canonical() string {
	if len(r.Answers) == 0 {
		return ""
	}
	return r.Answers[0]
}

// Bank is immutable after construction and safe for concurrent reads.
type Bank struct {
	words   []string
	allowed map[string]struct{}
	riddles []Riddle
	hints   map[string]string // normalized canonical answer → hint
}

// New validates and assembles a bank. Answers are always accepted guesses.
func New(words, allowed []string, riddles []Riddle) (*Bank, error) {
	words = cleanWords(words)
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	riddles = lo.Filter(riddles, func(r Riddle, _ int) bool {
		ok := strings.TrimSpace(r.Question) != "" && len(r.Answers) > 0 && riddle.Normalize(r.Answers[0]) != ""
		if !ok {
			log.Warn().Str("question", r.Question).Msg("skipping malformed riddle")
		}
		return ok
	})
	if len(riddles) == 0 {
		return nil, ErrNoRiddles
	}

	set := make(map[string]struct{}, len(words)+len(allowed))
	for _, w := range append(cleanWords(allowed), words...) {
		set[w] = struct{}{}
	}

	hints := lo.Associate(
		lo.Filter(riddles, func(r Riddle, _ int) bool { return r.Hint != "" }),
		func(r Riddle) (string, string) { return riddle.Normalize(r.Canonical()), r.Hint },
	)

	return &Bank{words: words, allowed: set, riddles: riddles, hints: hints}, nil
}

// Load builds the bank from env-provided files or the embedded defaults.
func Load() (*Bank, error) {
	var (
		words, allowed []string
		riddles        []Riddle
		err            error
	)

	wordsPath := os.Getenv("PUZZLE_WORDS_FILE")
	allowedPath := os.Getenv("PUZZLE_ALLOWED_FILE")
	riddlesPath := os.Getenv("PUZZLE_RIDDLES_FILE")

	switch {
	case wordsPath != "":
		if words, err = readWordFile(wordsPath); err != nil {
			return nil, err
		}
	default:
		if words, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
	}

	switch {
	case allowedPath != "":
		if allowed, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
	default:
		if allowed, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed list: %w", err)
		}
	}

	switch {
	case riddlesPath != "":
		if riddles, err = readRiddleFile(riddlesPath); err != nil {
			return nil, err
		}
	default:
		recs, err := assets.Riddles()
		if err != nil {
			return nil, fmt.Errorf("embedded riddles: %w", err)
		}
		riddles = fromRecords(recs)
	}

	return New(words, allowed, riddles)
}

// WordFor returns the word for a day.
func (b *Bank) WordFor(dayIndex int64) string {
	return b.words[daily.Mod(dayIndex, int64(len(b.words)))]
}

// RiddleFor returns the riddle for a day.
func (b *Bank) RiddleFor(dayIndex int64) Riddle {
	return b.riddles[daily.Mod(dayIndex, int64(len(b.riddles)))]
}

// IsAllowed reports whether w is an accepted guess.
func (b *Bank) IsAllowed(w string) bool {
	_, ok := b.allowed[strings.ToLower(w)]
	return ok
}

// HintFor returns the hint registered for a riddle's canonical answer.
func (b *Bank) HintFor(canonical string) (string, bool) {
	h, ok := b.hints[riddle.Normalize(canonical)]
	return h, ok
}

// Words returns a copy of the word bank in order.
func (b *Bank) Words() []string { return append([]string(nil), b.words...) }

// Riddles returns a copy of the riddle bank in order.
func (b *Bank) Riddles() []Riddle { return append([]Riddle(nil), b.riddles...) }

// Stats returns counts of loaded entries: (answers, allowed guesses, riddles).
func (b *Bank) Stats() (answersCount, allowedCount, riddleCount int) {
	return len(b.words), len(b.allowed), len(b.riddles)
}

// cleanWords lowercases and trims, dropping entries that are not 5 letters a–z.
func cleanWords(in []string) []string {
	return lo.FilterMap(in, func(w string, _ int) (string, bool) {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) != WordLength || !game.IsLetters(w) {
			if w != "" {
				log.Warn().Str("word", w).Msg("skipping word: not 5 letters a-z")
			}
			return "", false
		}
		return w, true
	})
}

// readWordFile loads whitespace-separated words from a file; '#' starts a comment line.
func readWordFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.Fields(line)...)
	}
	return out, nil
}

func readRiddleFile(path string) ([]Riddle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rf assets.RiddleFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return fromRecords(rf.Riddles), nil
}

func fromRecords(recs []assets.RiddleRecord) []Riddle {
	return lo.Map(recs, func(r assets.RiddleRecord, _ int) Riddle {
		return Riddle{Question: r.Question, Answers: r.Answers, Hint: r.Hint}
	})
}
