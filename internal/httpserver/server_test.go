package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/dailypuzzles/internal/bank"
	"github.com/robalobadob/dailypuzzles/internal/kv"
	"github.com/robalobadob/dailypuzzles/internal/puzzle"
	"github.com/robalobadob/dailypuzzles/internal/store"
)

var (
	wordDay   = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	riddleDay = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
)

func newTestServer(t *testing.T, at time.Time, opts Options) http.Handler {
	t.Helper()
	b, err := bank.New(
		[]string{"crane", "slate"},
		[]string{"speed", "erase"},
		[]bank.Riddle{{Question: "What gets wet while drying?", Answers: []string{"towel", "a towel"}, Hint: "Bath time."}},
	)
	require.NoError(t, err)
	svc := puzzle.NewService(b, kv.NewMemory(),
		puzzle.WithClock(func() time.Time { return at }),
		puzzle.WithLocation(time.UTC),
		puzzle.WithProductName("Test Puzzles"))
	if opts.RateLimitBurst == 0 {
		opts = Options{RateLimitRPS: 1000, RateLimitBurst: 1000}
	}
	return New(svc, store.NewMemoryStore(), b, opts).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func newSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rec, body := do(t, h, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := body["sessionId"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealthAndToday(t *testing.T) {
	h := newTestServer(t, wordDay, Options{})

	rec, body := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	_, body = do(t, h, http.MethodGet, "/today", "")
	assert.Equal(t, "2024-01-02", body["date"])
	assert.Equal(t, "Word", body["mode"])
	assert.EqualValues(t, 5, body["wordLength"])
	assert.NotContains(t, body, "word")

	h = newTestServer(t, riddleDay, Options{})
	_, body = do(t, h, http.MethodGet, "/today", "")
	assert.Equal(t, "Riddle", body["mode"])
	assert.Equal(t, "What gets wet while drying?", body["question"])
}

func TestWordFlow(t *testing.T) {
	h := newTestServer(t, wordDay, Options{})
	id := newSession(t, h)

	rec, body := do(t, h, http.MethodPost, "/sessions/"+id+"/guess", `{"guess":"zzzzz"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "not_in_word_list", body["error"])
	assert.Equal(t, "Not in word list.", body["message"])
	assert.Contains(t, body, "state")

	rec, body = do(t, h, http.MethodPost, "/sessions/"+id+"/guess", `{"guess":"slate"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	result := body["result"].(map[string]any)
	assert.Equal(t, []any{"absent", "absent", "correct", "absent", "correct"}, result["marks"])
	assert.Equal(t, "playing", result["status"])

	for _, k := range []string{"C", "r", "a", "n", "e"} {
		rec, _ = do(t, h, http.MethodPost, "/sessions/"+id+"/key", `{"key":"`+k+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, body = do(t, h, http.MethodPost, "/sessions/"+id+"/key", `{"key":"Enter"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	result = body["result"].(map[string]any)
	assert.Equal(t, true, result["solved"])
	assert.Equal(t, "won", result["status"])

	_, body = do(t, h, http.MethodGet, "/streak", "")
	assert.EqualValues(t, 1, body["streak"])
	assert.Equal(t, "2024-01-02", body["lastSolvedDate"])

	rec, body = do(t, h, http.MethodPost, "/sessions/"+id+"/key", `{"key":"a"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "game_over", body["error"])

	rec, body = do(t, h, http.MethodPost, "/sessions/"+id+"/hint", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "wrong_mode", body["error"])
}

func TestRiddleFlow(t *testing.T) {
	h := newTestServer(t, riddleDay, Options{})
	id := newSession(t, h)

	rec, body := do(t, h, http.MethodPost, "/sessions/"+id+"/answer", `{"answer":"  !! "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "empty_answer", body["error"])

	_, body = do(t, h, http.MethodPost, "/sessions/"+id+"/hint", "")
	assert.Equal(t, "Bath time.", body["text"])

	_, body = do(t, h, http.MethodPost, "/sessions/"+id+"/answer", `{"answer":"sponge"}`)
	assert.Equal(t, "wrong", body["result"].(map[string]any)["outcome"])

	_, body = do(t, h, http.MethodPost, "/sessions/"+id+"/answer", `{"answer":"A Towel."}`)
	result := body["result"].(map[string]any)
	assert.Equal(t, "correct", result["outcome"])
	assert.Equal(t, true, result["firstSolve"])

	_, body = do(t, h, http.MethodGet, "/sessions/"+id, "")
	assert.Equal(t, true, body["riddle"].(map[string]any)["solved"])

	_, body = do(t, h, http.MethodGet, "/share", "")
	assert.Equal(t, "Test Puzzles — 2024-01-01 — I solved the Riddle!", body["text"])
}

func TestUnknownSessionAndBadInput(t *testing.T) {
	h := newTestServer(t, wordDay, Options{})

	rec, body := do(t, h, http.MethodGet, "/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "session_not_found", body["error"])

	id := newSession(t, h)
	rec, _ = do(t, h, http.MethodPost, "/sessions/"+id+"/guess", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, h, http.MethodPost, "/sessions/"+id+"/key", `{"key":"F5"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_key", body["error"])

	rec, _ = do(t, h, http.MethodGet, "/share?mode=Crossword", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestThemeEndpoints(t *testing.T) {
	h := newTestServer(t, wordDay, Options{})

	_, body := do(t, h, http.MethodGet, "/theme", "")
	assert.Equal(t, "dark", body["theme"])

	_, body = do(t, h, http.MethodPost, "/theme/toggle", "")
	assert.Equal(t, "light", body["theme"])

	rec, _ := do(t, h, http.MethodPut, "/theme", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body = do(t, h, http.MethodPut, "/theme", `{"theme":"dark"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dark", body["theme"])
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, wordDay, Options{RateLimitRPS: 1, RateLimitBurst: 2})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec, _ := do(t, h, http.MethodGet, "/health", "")
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
