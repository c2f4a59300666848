package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dailypuzzles/internal/daily"
	"github.com/robalobadob/dailypuzzles/internal/theme"
)

func (s *Server) mountPrefs(r chi.Router) {
	r.Get("/streak", s.handleStreak)
	r.Route("/theme", func(r chi.Router) {
		r.Get("/", s.handleTheme)
		r.Put("/", s.handleSetTheme)
		r.Post("/toggle", s.handleToggleTheme)
	})
	r.Get("/share", s.handleShare)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Streak(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load streak")
		writeError(w, http.StatusInternalServerError, "load_failed", "", nil)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type themeBody struct {
	Theme theme.Theme `json:"theme"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Theme(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load theme")
		writeError(w, http.StatusInternalServerError, "load_failed", "", nil)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: t})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "", nil)
		return
	}
	t, err := theme.Parse(req.Theme)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "bad_theme", err.Error(), nil)
		return
	}
	if err := s.svc.SetTheme(r.Context(), t); err != nil {
		log.Error().Err(err).Msg("save theme")
		writeError(w, http.StatusInternalServerError, "save_failed", "", nil)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: t})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.ToggleTheme(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("toggle theme")
		writeError(w, http.StatusInternalServerError, "save_failed", "", nil)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: t})
}

// handleShare composes the share line for today; ?mode= defaults to today's mode.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	today := s.svc.Today()
	mode := today.Mode
	if q := r.URL.Query().Get("mode"); q != "" {
		m, ok := daily.ParseMode(q)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "bad_mode", "mode must be Word or Riddle", nil)
			return
		}
		mode = m
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": s.svc.ShareText(mode, today.Date)})
}
