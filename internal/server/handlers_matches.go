package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/matching"
	"github.com/jonathan/jobmatch/internal/types"
)

// ListMatchesResponse represents the response for listing a user's matches
type ListMatchesResponse struct {
	Matches []types.JobMatch `json:"matches"`
	Count   int              `json:"count"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// handleRefreshMatches runs one refresh cycle for the user
func (s *Server) handleRefreshMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	result, err := s.matches.Refresh(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Refresh failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleListMatches lists a user's matches with optional status filter and pagination
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)
	opts := matching.ListOptions{Limit: limit, Offset: offset}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status, err := types.ParseStatus(statusStr)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		opts.Status = &status
	}

	matches, err := s.matches.ListMatches(r.Context(), userID, opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if matches == nil {
		matches = []types.JobMatch{}
	}

	s.jsonResponse(w, http.StatusOK, ListMatchesResponse{
		Matches: matches,
		Count:   len(matches),
		Limit:   limit,
		Offset:  offset,
	})
}

// handleMatchStats returns the user's aggregate match statistics
func (s *Server) handleMatchStats(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	req := types.StatsRequest{
		SkillGapLimit: parseQueryInt(r, "skill_gap_limit", 0, 50),
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}

	stats, err := s.matches.Stats(r.Context(), userID, matching.StatsOptions{
		SkillGapLimit: req.SkillGapLimit,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Stats failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}

// handleGetMatch retrieves a match by its ID
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	match, err := s.matches.GetMatch(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, matching.ErrMatchNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Match not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, match)
}

// handleUpdateMatchStatus transitions a match to a new review status
func (s *Server) handleUpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var req types.UpdateMatchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status: "+err.Error())
		return
	}

	match, err := s.matches.Transition(r.Context(), matchID, req.Status)
	if err != nil {
		if errors.Is(err, matching.ErrMatchNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Match not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Transition failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, match)
}

// parseQueryInt parses a non-negative integer query parameter with a default
// and an optional maximum (0 = no maximum).
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}
