package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"telegram-weather-notify/internal/domain"
	"telegram-weather-notify/internal/infra/sched"
)

type previewResponse struct {
	At      time.Time `json:"at"`
	Count   int       `json:"count"`
	UserIDs []int64   `json:"user_ids"`
}

// handlePreview answers "which users would match at time T" without sending
// anything. ?at= takes RFC3339; default is the current minute.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	at := s.clock.NowUTC().Truncate(time.Minute)
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid 'at', want RFC3339", http.StatusBadRequest)
			return
		}
		at = parsed.UTC().Truncate(time.Minute)
	}

	ids, err := s.notifUC.PreviewAt(r.Context(), at)
	if err != nil {
		s.log.Error().Err(err).Msg("preview failed")
		http.Error(w, "preview failed", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []int64{}
	}

	writeJSON(w, http.StatusOK, previewResponse{At: at, Count: len(ids), UserIDs: ids})
}

type schedulerResponse struct {
	Running bool              `json:"running"`
	Jobs    []sched.JobStatus `json:"jobs"`
}

func (s *Server) handleScheduler(w http.ResponseWriter, _ *http.Request) {
	resp := schedulerResponse{Jobs: make([]sched.JobStatus, 0, len(s.jobs))}
	for _, job := range s.jobs {
		st := job.Status()
		resp.Jobs = append(resp.Jobs, st)
		if st.Running {
			resp.Running = true
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleNotify sends one immediate notification to the given user,
// bypassing the minute matching. Operator resend path.
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := s.notifUC.NotifyUser(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrInvalidArgument):
			http.Error(w, "user has no city configured", http.StatusBadRequest)
		default:
			s.log.Error().Err(err).Int64("user_id", userID).Msg("manual notify failed")
			http.Error(w, "notify failed", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
