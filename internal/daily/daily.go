// internal/daily/daily.go
//
// Calendar helpers for the daily puzzle.
// Responsibilities:
//   - DayIndex: stable integer seed for one local calendar day.
//   - DateKey / ParseDateKey / PrevDateKey: YYYY-MM-DD keys used by the streak.
//   - SelectMode: Word on even days, Riddle on odd days.
//
// All functions take the instant explicitly; nothing here reads the clock.

package daily

import (
	"fmt"
	"strings"
	"time"
)

// msPerDay is the divisor applied to local-midnight epoch milliseconds.
const msPerDay = 86_400_000

// dateLayout is the persisted calendar date format.
const dateLayout = "2006-01-02"

// DayIndex returns floor(localMidnight(now) / 1 day) in epoch milliseconds.
// The location of now decides what "local" means.
func DayIndex(now time.Time) int64 {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return floorDiv(midnight.UnixMilli(), msPerDay)
}

// DateKey returns the local calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as a UTC date.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(dateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("daily: bad date key %q: %w", key, err)
	}
	return t, nil
}

// PrevDateKey returns the calendar date before key.
// Arithmetic happens on a UTC date so DST never skips or repeats a day.
func PrevDateKey(key string) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(dateLayout), nil
}

// Mode is the puzzle type played on a given day.
type Mode string

const (
	ModeWord   Mode = "Word"
	ModeRiddle Mode = "Riddle"
)

// SelectMode maps a day index to its puzzle type.
func SelectMode(dayIndex int64) Mode {
	if Mod(dayIndex, 2) == 0 {
		return ModeWord
	}
	return ModeRiddle
}

// ParseMode accepts "word"/"riddle" in any case.
func ParseMode(s string) (Mode, bool) {
	switch {
	case strings.EqualFold(s, string(ModeWord)):
		return ModeWord, true
	case strings.EqualFold(s, string(ModeRiddle)):
		return ModeRiddle, true
	}
	return "", false
}

// Mod returns the non-negative remainder of a divided by n (n > 0).
func Mod(a int64, n int64) int64 {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
