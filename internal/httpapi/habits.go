package httpapi

import (
	"net/http"

	"github.com/questlog/backend/internal/service"
)

type habitCreateRequest struct {
	Name string `json:"name"`
}

type habitUpdateRequest struct {
	Name           *string   `json:"name"`
	CompletedDates *[]string `json:"completedDates"`
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.habits.List(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid body")
		return
	}

	habit, err := s.habits.Create(r.Context(), userIDFrom(r), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	var req habitUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid body")
		return
	}

	habit, err := s.habits.Update(r.Context(), userIDFrom(r), r.PathValue("id"), service.HabitUpdate{
		Name:           req.Name,
		CompletedDates: req.CompletedDates,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.habits.Delete(r.Context(), userIDFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
