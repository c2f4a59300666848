package puzzle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/dailypuzzles/internal/bank"
	"github.com/robalobadob/dailypuzzles/internal/daily"
	"github.com/robalobadob/dailypuzzles/internal/game"
	"github.com/robalobadob/dailypuzzles/internal/kv"
	"github.com/robalobadob/dailypuzzles/internal/riddle"
	"github.com/robalobadob/dailypuzzles/internal/theme"
)

var (
	wordDay   = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC) // index 19724
	riddleDay = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) // index 19723
)

func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.New(
		[]string{"crane", "slate"},
		[]string{"speed", "erase", "cigar"},
		[]bank.Riddle{{Question: "What has to be broken before you can use it?", Answers: []string{"egg", "an egg"}, Hint: "Breakfast starts here."}},
	)
	require.NoError(t, err)
	return b
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func newService(t *testing.T, at time.Time, store kv.Store) (*Service, *clock) {
	t.Helper()
	c := &clock{now: at}
	if store == nil {
		store = kv.NewMemory()
	}
	return NewService(testBank(t), store, WithClock(c.Now), WithLocation(time.UTC), WithProductName("Test Puzzles")), c
}

func TestToday(t *testing.T) {
	svc, c := newService(t, wordDay, nil)

	today := svc.Today()
	assert.Equal(t, Today{Date: "2024-01-02", DayIndex: 19724, Mode: daily.ModeWord}, today)
	assert.Equal(t, "crane", svc.TodayPuzzle().Word)

	c.Set(riddleDay)
	assert.Equal(t, daily.ModeRiddle, svc.TodayMode())
	p := svc.TodayPuzzle()
	require.NotNil(t, p.Riddle)
	assert.Equal(t, "egg", p.Riddle.Canonical())
	assert.Empty(t, p.Word)
}

func TestWordSessionSolveRecordsStreak(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, wordDay, nil)

	sess, err := svc.NewSession()
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "2024-01-02", sess.Date())

	res, err := svc.SubmitGuess(ctx, sess, "slate")
	require.NoError(t, err)
	assert.False(t, res.Solved)

	res, err = svc.SubmitGuess(ctx, sess, "CRANE")
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, game.StatusWon, res.Status)

	rec, err := svc.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Streak)
	assert.Equal(t, "2024-01-02", rec.LastSolved)

	st := svc.State(sess)
	require.NotNil(t, st.Word)
	assert.Nil(t, st.Riddle)
	assert.Equal(t, 1, st.Streak)

	_, err = svc.SubmitGuess(ctx, sess, "slate")
	assert.ErrorIs(t, err, game.ErrGameOver)
}

func TestPressKeys(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, wordDay, nil)
	sess, err := svc.NewSession()
	require.NoError(t, err)

	for _, k := range []string{"c", "r", "a", "n", "x", "Backspace", "e"} {
		_, err := svc.PressKey(ctx, sess, k)
		require.NoError(t, err, k)
	}
	res, err := svc.PressKey(ctx, sess, "Enter")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Solved)

	_, err = svc.PressKey(ctx, sess, "F5")
	assert.ErrorIs(t, err, game.ErrInvalidKey)
}

func TestInvalidGuessLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, wordDay, nil)
	sess, err := svc.NewSession()
	require.NoError(t, err)

	require.NoError(t, svc.PressLetter(ctx, sess, 'c'))
	_, err = svc.Submit(ctx, sess)
	assert.ErrorIs(t, err, game.ErrNotEnoughLetters)

	_, err = svc.SubmitGuess(ctx, sess, "zzzzz")
	assert.ErrorIs(t, err, game.ErrNotInWordList)
	_, err = svc.SubmitGuess(ctx, sess, "cr")
	assert.ErrorIs(t, err, game.ErrNotEnoughLetters)
	_, err = svc.SubmitGuess(ctx, sess, "zzzzz")
	assert.ErrorIs(t, err, game.ErrNotInWordList)

	st := svc.State(sess)
	assert.Equal(t, 0, st.Word.Row)
	assert.Equal(t, 1, st.Word.Col)
	assert.Equal(t, "c", st.Word.Board[0].Letters)
	assert.Nil(t, st.Word.Board[0].Marks)
	assert.Equal(t, game.StatusPlaying, st.Word.Status)
	assert.Equal(t, game.MsgNotInWordList, st.Word.Message)

	rec, err := svc.Streak(ctx)
	require.NoError(t, err)
	assert.Zero(t, rec.Streak)
}

func TestRiddleSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, riddleDay, nil)
	sess, err := svc.NewSession()
	require.NoError(t, err)

	_, err = svc.SubmitGuess(ctx, sess, "crane")
	assert.ErrorIs(t, err, ErrWrongMode)

	hint, err := svc.Hint(sess)
	require.NoError(t, err)
	assert.Equal(t, "Breakfast starts here.", hint)

	res, err := svc.SubmitAnswer(ctx, sess, "a chicken")
	require.NoError(t, err)
	assert.Equal(t, riddle.OutcomeWrong, res.Outcome)

	res, err = svc.SubmitAnswer(ctx, sess, "  An EGG! ")
	require.NoError(t, err)
	assert.True(t, res.FirstSolve)

	res, err = svc.SubmitAnswer(ctx, sess, "egg")
	require.NoError(t, err)
	assert.False(t, res.FirstSolve)

	rec, err := svc.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Streak)
	assert.Equal(t, "2024-01-01", rec.LastSolved)
}

func TestRevealDoesNotCountAsSolve(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, riddleDay, nil)
	sess, err := svc.NewSession()
	require.NoError(t, err)

	ans, err := svc.Reveal(sess)
	require.NoError(t, err)
	assert.Equal(t, "egg", ans)

	st := svc.State(sess)
	require.NotNil(t, st.Riddle)
	assert.True(t, st.Riddle.Revealed)
	assert.False(t, st.Riddle.Solved)

	rec, err := svc.Streak(ctx)
	require.NoError(t, err)
	assert.Zero(t, rec.Streak)
}

func TestStreakAcrossDays(t *testing.T) {
	ctx := context.Background()
	svc, c := newService(t, riddleDay, nil)

	sess, err := svc.NewSession()
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, sess, "egg")
	require.NoError(t, err)

	c.Set(wordDay)
	sess, err = svc.NewSession()
	require.NoError(t, err)
	_, err = svc.SubmitGuess(ctx, sess, "crane")
	require.NoError(t, err)

	rec, err := svc.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Streak)

	// a session keeps the day it was started on
	c.Set(wordDay.AddDate(0, 0, 5))
	st := svc.State(sess)
	assert.Equal(t, "2024-01-02", st.Today.Date)
}

type brokenStore struct{ kv.Store }

func (brokenStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestSolveSurvivesStoreFailure(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, wordDay, brokenStore{kv.NewMemory()})
	sess, err := svc.NewSession()
	require.NoError(t, err)

	res, err := svc.SubmitGuess(ctx, sess, "crane")
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, game.StatusWon, svc.State(sess).Word.Status)
	assert.Zero(t, svc.State(sess).Streak)
}

func TestThemeAndShare(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, wordDay, nil)

	th, err := svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, th)

	th, err = svc.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, th)

	require.NoError(t, svc.SetTheme(ctx, theme.Dark))
	th, err = svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, th)

	assert.Equal(t, "Test Puzzles — 2024-01-02 — I solved the Word!", svc.ShareText(daily.ModeWord, "2024-01-02"))
}
