package handler

import "net/http"

// GetStatistics handles GET /api/stats.
func (s *Server) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.completion.Statistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetStateStats handles GET /api/stats/states.
func (s *Server) GetStateStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.completion.StateStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetMilestones handles GET /api/milestones.
func (s *Server) GetMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := s.completion.Milestones(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, milestones)
}
