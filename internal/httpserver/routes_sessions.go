// internal/httpserver/routes_sessions.go
//
// Session endpoints. A session is one play of today's puzzle: a word grid
// on even days, a riddle on odd days. Rejected input answers 422 with the
// unchanged state so the shell can redraw and show the message.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailypuzzles/internal/game"
	"github.com/robalobadob/dailypuzzles/internal/puzzle"
	"github.com/robalobadob/dailypuzzles/internal/riddle"
	"github.com/robalobadob/dailypuzzles/internal/store"
)

func (s *Server) mountSessions(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleState))
			r.Post("/key", s.withSession(s.handleKey))
			r.Post("/guess", s.withSession(s.handleGuess))
			r.Post("/answer", s.withSession(s.handleAnswer))
			r.Post("/hint", s.withSession(s.handleHint))
			r.Post("/reveal", s.withSession(s.handleReveal))
		})
	})
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *puzzle.Session)

// withSession resolves {id} and answers 404 for unknown sessions.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, err := s.store.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found", "Unknown session.", nil)
			return
		}
		if err != nil {
			log.Error().Err(err).Str("session", id).Msg("load session")
			writeError(w, http.StatusInternalServerError, "load_failed", "", nil)
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.NewSession()
	if err != nil {
		log.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "session_failed", "", nil)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", "", nil)
		return
	}
	writeJSON(w, http.StatusCreated, s.svc.State(sess))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request, sess *puzzle.Session) {
	writeJSON(w, http.StatusOK, s.svc.State(sess))
}

// ------------------------------ WORD ---------------------------------------

type keyReq struct {
	Key string `json:"key"`
}

type guessReq struct {
	Guess string `json:"guess"`
}

// wordRes pairs the outcome of a commit (nil for plain typing) with the new state.
type wordRes struct {
	Result *game.Result        `json:"result,omitempty"`
	State  puzzle.SessionState `json:"state"`
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request, sess *puzzle.Session) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "", nil)
		return
	}
	res, err := s.svc.PressKey(r.Context(), sess, req.Key)
	s.writeWord(w, sess, res, err)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request, sess *puzzle.Session) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "", nil)
		return
	}
	res, err := s.svc.SubmitGuess(r.Context(), sess, req.Guess)
	s.writeWord(w, sess, res, err)
}

func (s *Server) writeWord(w http.ResponseWriter, sess *puzzle.Session, res *game.Result, err error) {
	st := s.svc.State(sess)
	if err != nil {
		s.writeInputError(w, err, st)
		return
	}
	writeJSON(w, http.StatusOK, wordRes{Result: res, State: st})
}

func (s *Server) writeInputError(w http.ResponseWriter, err error, st puzzle.SessionState) {
	code, ok := inputError(err)
	if !ok {
		log.Error().Err(err).Str("session", st.ID).Msg("session action")
		writeError(w, http.StatusInternalServerError, "internal", "", nil)
		return
	}
	msg := game.Feedback(err)
	if errors.Is(err, puzzle.ErrWrongMode) {
		msg = "Today's puzzle is a " + string(st.Today.Mode) + "."
	}
	writeError(w, http.StatusUnprocessableEntity, code, msg, st)
}

// ------------------------------ RIDDLE -------------------------------------

type answerReq struct {
	Answer string `json:"answer"`
}

type riddleRes struct {
	Result *riddle.Result      `json:"result,omitempty"`
	Text   string              `json:"text,omitempty"` // hint or revealed answer
	State  puzzle.SessionState `json:"state"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request, sess *puzzle.Session) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "", nil)
		return
	}
	res, err := s.svc.SubmitAnswer(r.Context(), sess, req.Answer)
	st := s.svc.State(sess)
	if err != nil {
		s.writeInputError(w, err, st)
		return
	}
	if res.Outcome == riddle.OutcomeEmpty {
		writeError(w, http.StatusUnprocessableEntity, "empty_answer", "Type an answer first.", st)
		return
	}
	writeJSON(w, http.StatusOK, riddleRes{Result: &res, State: st})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request, sess *puzzle.Session) {
	text, err := s.svc.Hint(sess)
	s.writeRiddleText(w, sess, text, err)
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request, sess *puzzle.Session) {
	text, err := s.svc.Reveal(sess)
	s.writeRiddleText(w, sess, text, err)
}

func (s *Server) writeRiddleText(w http.ResponseWriter, sess *puzzle.Session, text string, err error) {
	st := s.svc.State(sess)
	if err != nil {
		s.writeInputError(w, err, st)
		return
	}
	writeJSON(w, http.StatusOK, riddleRes{Text: text, State: st})
}
