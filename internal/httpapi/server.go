package httpapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/questlog/backend/internal/auth"
	"github.com/questlog/backend/internal/repository"
	"github.com/questlog/backend/internal/service"
	"github.com/questlog/backend/internal/ws"
)

type contextKey string

const userIDKey contextKey = "userID"

// Server wires the HTTP surface to the services behind it.
type Server struct {
	auth         *auth.Manager
	users        *repository.UserRepository
	tasks        *service.TaskService
	habits       *service.HabitService
	missions     *service.MissionService
	achievements *service.AchievementService
	hub          *ws.Hub
	static       http.Handler
}

func NewServer(
	authMgr *auth.Manager,
	users *repository.UserRepository,
	tasks *service.TaskService,
	habits *service.HabitService,
	missions *service.MissionService,
	achievements *service.AchievementService,
	hub *ws.Hub,
) *Server {
	return &Server{
		auth:         authMgr,
		users:        users,
		tasks:        tasks,
		habits:       habits,
		missions:     missions,
		achievements: achievements,
		hub:          hub,
	}
}

// SetStaticHandler configures the handler serving the frontend on "/".
// Must be called before SetupRoutes.
func (s *Server) SetStaticHandler(h http.Handler) {
	s.static = h
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/users/me", s.requireAuth(s.handleMe))

	mux.HandleFunc("GET /api/tasks", s.requireAuth(s.handleListTasks))
	mux.HandleFunc("POST /api/tasks", s.requireAuth(s.handleCreateTask))
	mux.HandleFunc("GET /api/tasks/archived", s.requireAuth(s.handleListArchivedTasks))
	mux.HandleFunc("POST /api/tasks/archive-completed", s.requireAuth(s.handleArchiveCompleted))
	mux.HandleFunc("PUT /api/tasks/{id}", s.requireAuth(s.handleUpdateTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.requireAuth(s.handleDeleteTask))
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.requireAuth(s.handleCompleteTask))

	mux.HandleFunc("GET /api/habits", s.requireAuth(s.handleListHabits))
	mux.HandleFunc("POST /api/habits", s.requireAuth(s.handleCreateHabit))
	mux.HandleFunc("PUT /api/habits/{id}", s.requireAuth(s.handleUpdateHabit))
	mux.HandleFunc("DELETE /api/habits/{id}", s.requireAuth(s.handleDeleteHabit))

	mux.HandleFunc("GET /api/missions", s.requireAuth(s.handleListMissions))
	mux.HandleFunc("POST /api/missions", s.requireAuth(s.handleCreateMission))
	mux.HandleFunc("PUT /api/missions/{id}", s.requireAuth(s.handleUpdateMission))
	mux.HandleFunc("DELETE /api/missions/{id}", s.requireAuth(s.handleDeleteMission))
	mux.HandleFunc("POST /api/missions/{id}/progress", s.requireAuth(s.handleMissionProgress))
	mux.HandleFunc("PUT /api/missions/{id}/archive", s.requireAuth(s.handleMissionArchive))

	mux.HandleFunc("GET /api/achievements", s.requireAuth(s.handleListAchievements))
	mux.HandleFunc("POST /api/achievements/initialize", s.requireAuth(s.handleInitAchievements))
	mux.HandleFunc("POST /api/achievements/check", s.requireAuth(s.handleCheckAchievements))

	mux.HandleFunc("GET /ws", s.requireAuth(s.handleWS))

	if s.static != nil {
		log.Println("Serving embedded frontend")
		mux.Handle("/", s.static)
	}
}

// requireAuth resolves the caller's user ID from a Bearer token or, for
// the websocket route, a "token" query parameter, and stores it in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := ""
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		} else if q := r.URL.Query().Get("token"); q != "" {
			raw = q
		}
		if raw == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing token"})
			return
		}

		userID, err := s.auth.ParseToken(raw)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

func userIDFrom(r *http.Request) uint {
	id, _ := r.Context().Value(userIDKey).(uint)
	return id
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleWS(w, r, userIDFrom(r))
}

func ListenAndServe(host string, port int, mux *http.ServeMux) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("Server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
