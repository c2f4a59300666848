// internal/httpserver/server.go
//
// JSON-over-HTTP adapter for the local UI shell.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request logging, per-client rate limiting).
//   - Public endpoints: "/", "/health", "/today".
//   - Session endpoints: create, read, keys, guesses, riddle answers/hints/reveal.
//   - Preference endpoints: streak, theme, share text.
//
// All puzzle rules live in package puzzle; handlers only translate between
// HTTP and the service.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailypuzzles/internal/bank"
	"github.com/robalobadob/dailypuzzles/internal/game"
	"github.com/robalobadob/dailypuzzles/internal/puzzle"
	"github.com/robalobadob/dailypuzzles/internal/store"
)

// Options tunes the adapter. Zero values fall back to defaults.
type Options struct {
	RateLimitRPS   int
	RateLimitBurst int
}

// Server bundles the router, the puzzle service and the session registry.
type Server struct {
	r     *chi.Mux
	svc   *puzzle.Service
	store store.Store
	bank  *bank.Bank
	lim   *limiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *puzzle.Service, st store.Store, b *bank.Bank, opts Options) *Server {
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 5
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 10
	}
	s := &Server{
		r:     chi.NewRouter(),
		svc:   svc,
		store: st,
		bank:  b,
		lim:   newLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // single-origin CORS
	s.r.Use(s.lim.middleware)                // 429 when a client is too chatty

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"daily-puzzles","endpoints":["/health","/today","POST /sessions","/streak","/theme","/share"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/bank", func(w http.ResponseWriter, r *http.Request) {
		a, g, q := s.bank.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g, "riddles": q})
	})

	s.r.Get("/today", s.handleToday)
	s.mountSessions(s.r)
	s.mountPrefs(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path, nil)
	})

	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.r }

// PruneClients drops rate-limit state for clients idle since cutoff.
func (s *Server) PruneClients(cutoff time.Time) int { return s.lim.prune(cutoff) }

// ------------------------------ TODAY --------------------------------------

// todayRes is the public view of today's puzzle; it never carries an answer.
type todayRes struct {
	puzzle.Today
	WordLength int    `json:"wordLength,omitempty"`
	Rows       int    `json:"rows,omitempty"`
	Question   string `json:"question,omitempty"`
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	p := s.svc.TodayPuzzle()
	res := todayRes{Today: p.Today}
	if p.Riddle != nil {
		res.Question = p.Riddle.Question
	} else {
		res.WordLength = game.Cols
		res.Rows = game.Rows
	}
	writeJSON(w, http.StatusOK, res)
}

// ----------------------------- helpers -------------------------------------

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	State   any    `json:"state,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string, state any) {
	writeJSON(w, status, errorRes{Error: code, Message: msg, State: state})
}

// inputError maps a rejected puzzle action to its wire code.
func inputError(err error) (code string, ok bool) {
	switch {
	case errors.Is(err, game.ErrNotEnoughLetters):
		return "not_enough_letters", true
	case errors.Is(err, game.ErrNotInWordList):
		return "not_in_word_list", true
	case errors.Is(err, game.ErrInvalidKey):
		return "invalid_key", true
	case errors.Is(err, game.ErrGameOver):
		return "game_over", true
	case errors.Is(err, puzzle.ErrWrongMode):
		return "wrong_mode", true
	}
	return "", false
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
