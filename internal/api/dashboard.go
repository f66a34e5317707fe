package api

import "net/http"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.DashboardStats(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "calculate dashboard")
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}
