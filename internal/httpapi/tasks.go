package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/questlog/backend/internal/service"
)

type taskCreateRequest struct {
	Title string     `json:"title"`
	Date  *time.Time `json:"date"`
}

type taskUpdateRequest struct {
	Title     *string    `json:"title"`
	Date      *time.Time `json:"date"`
	ClearDate bool       `json:"clearDate"`
}

type archiveResponse struct {
	Archived int64 `json:"archived"`
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleListArchivedTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListArchived(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid body")
		return
	}

	task, err := s.tasks.Create(r.Context(), userIDFrom(r), service.TaskInput{
		Title: req.Title,
		Due:   req.Date,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid task id")
		return
	}

	var req taskUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid body")
		return
	}

	task, err := s.tasks.Update(r.Context(), userIDFrom(r), id, service.TaskUpdate{
		Title:    req.Title,
		Due:      req.Date,
		ClearDue: req.ClearDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid task id")
		return
	}

	if err := s.tasks.Delete(r.Context(), userIDFrom(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeBadRequest(w, "invalid task id")
		return
	}

	result, err := s.tasks.Complete(r.Context(), userIDFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleArchiveCompleted(w http.ResponseWriter, r *http.Request) {
	n, err := s.tasks.ArchiveCompleted(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, archiveResponse{Archived: n})
}
