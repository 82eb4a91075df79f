package httpapi

import (
	"net/http"

	"github.com/questlog/backend/internal/service"
)

type missionCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Target      int    `json:"target"`
	OnDashboard bool   `json:"isOnDashboard"`
}

type missionUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	OnDashboard *bool   `json:"isOnDashboard"`
}

type missionProgressRequest struct {
	Progress int `json:"progress"`
}

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := s.missions.List(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, missions)
}

func (s *Server) handleCreateMission(w http.ResponseWriter, r *http.Request) {
	var req missionCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid body")
		return
	}

	mission, err := s.missions.Create(r.Context(), userIDFrom(r), service.MissionInput{
		Title:       req.Title,
		Description: req.Description,
		Target:      req.Target,
		OnDashboard: req.OnDashboard,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mission)
}

func (s *Server) handleUpdateMission(w http.ResponseWriter, r *http.Request) {
	var req missionUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid body")
		return
	}

	mission, err := s.missions.Update(r.Context(), userIDFrom(r), r.PathValue("id"), service.MissionUpdate{
		Title:       req.Title,
		Description: req.Description,
		OnDashboard: req.OnDashboard,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mission)
}

func (s *Server) handleDeleteMission(w http.ResponseWriter, r *http.Request) {
	if err := s.missions.Delete(r.Context(), userIDFrom(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMissionProgress(w http.ResponseWriter, r *http.Request) {
	var req missionProgressRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid body")
		return
	}

	result, err := s.missions.UpdateProgress(r.Context(), userIDFrom(r), r.PathValue("id"), req.Progress)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMissionArchive(w http.ResponseWriter, r *http.Request) {
	result, err := s.missions.Archive(r.Context(), userIDFrom(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
