package httpapi

import "net/http"

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := s.achievements.List(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}

func (s *Server) handleInitAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := s.achievements.Seed(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}

func (s *Server) handleCheckAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := s.achievements.Check(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}
