package httpapi

import (
	"net/http"

	"github.com/questlog/backend/internal/gamification"
	"github.com/questlog/backend/internal/model"
)

type meResponse struct {
	User     *model.User                `json:"user"`
	Progress gamification.LevelProgress `json:"progress"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.FindByID(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		User:     user,
		Progress: gamification.ProgressToNextLevel(user.XP),
	})
}
