// internal/streak/streak.go
//
// Consecutive-day solve streak.
//
// RecordSolve is the whole rule: a solve on the day after the last solve
// extends the streak, a solve after a gap restarts it at 1, and a second
// solve on the same day changes nothing. It does not care which puzzle
// mode produced the solve.
//
// Tracker persists the record under "streak-record" as
// {"streak":N,"lastSolvedDate":"YYYY-MM-DD"}. Absent or unreadable values
// read as the zero record.

package streak

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailypuzzles/internal/daily"
	"github.com/robalobadob/dailypuzzles/internal/kv"
)

// Key is the KV key holding the serialized Record.
const Key = "streak-record"

// Record is the persisted streak state. LastSolved is "" when never solved.
type Record struct {
	Streak     int    `json:"streak"`
	LastSolved string `json:"lastSolvedDate,omitempty"`
}

// RecordSolve applies one successful solve on day today (YYYY-MM-DD).
func RecordSolve(rec Record, today string) Record {
	if rec.LastSolved == today {
		return rec
	}
	next := 1
	if rec.LastSolved != "" {
		if yesterday, err := daily.PrevDateKey(today); err == nil && rec.LastSolved == yesterday {
			next = rec.Streak + 1
		}
	}
	return Record{Streak: next, LastSolved: today}
}

// Decode parses a stored record, falling back to the zero Record for
// anything it cannot trust.
func Decode(raw string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, fmt.Errorf("streak: decode: %w", err)
	}
	if rec.Streak < 0 {
		return Record{}, fmt.Errorf("streak: negative streak %d", rec.Streak)
	}
	if rec.LastSolved != "" {
		if _, err := daily.ParseDateKey(rec.LastSolved); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

// Encode serializes a record for storage.
func Encode(rec Record) (string, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Tracker reads and updates the persisted streak. The mutex makes each
// solve a single read-compute-write step.
type Tracker struct {
	kv kv.Store
	mu sync.Mutex
}

// NewTracker wraps a KV store.
func NewTracker(store kv.Store) *Tracker {
	return &Tracker{kv: store}
}

// Load returns the stored record, or the zero record if missing or corrupt.
// Only store I/O failures are returned as errors.
func (t *Tracker) Load(ctx context.Context) (Record, error) {
	raw, ok, err := t.kv.Get(ctx, Key)
	if err != nil {
		return Record{}, fmt.Errorf("streak: load: %w", err)
	}
	if !ok {
		return Record{}, nil
	}
	rec, err := Decode(raw)
	if err != nil {
		log.Warn().Err(err).Str("raw", raw).Msg("discarding unreadable streak record")
		return Record{}, nil
	}
	return rec, nil
}

// RecordSolve applies a solve on today and persists the result.
// A repeat solve on the same day does not write.
func (t *Tracker) RecordSolve(ctx context.Context, today string) (Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, err := t.Load(ctx)
	if err != nil {
		return Record{}, err
	}
	next := RecordSolve(cur, today)
	if next == cur {
		return cur, nil
	}
	raw, err := Encode(next)
	if err != nil {
		return cur, err
	}
	if err := t.kv.Set(ctx, Key, raw); err != nil {
		return cur, fmt.Errorf("streak: save: %w", err)
	}
	log.Info().Int("streak", next.Streak).Str("date", today).Msg("streak updated")
	return next, nil
}
