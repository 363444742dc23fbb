package web

import (
	"net/http"

	"github.com/vbonduro/vitrine/internal/domain"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats.ComputeStats(r.Context())
	if err != nil {
		s.fail(w, r, err, "Failed to fetch statistics")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	admin, err := s.svc.Accounts.Profile(r.Context(), sessionFrom(r.Context()).AdminID)
	if err != nil {
		s.fail(w, r, err, "Failed to fetch settings")
		return
	}
	s.writeJSON(w, http.StatusOK, admin)
}

// handleUpdateSettings applies a partial social-link update. Keys other
// than the five links, "password" included, are ignored.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if err := decodeJSON(r, &update); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := s.svc.Accounts.UpdateProfile(r.Context(), sessionFrom(r.Context()).AdminID, update)
	if err != nil {
		s.fail(w, r, err, "Failed to update settings")
		return
	}
	s.writeJSON(w, http.StatusOK, admin)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := s.svc.Accounts.ChangePassword(r.Context(), sessionFrom(r.Context()).AdminID, req.OldPassword, req.NewPassword)
	if err != nil {
		s.fail(w, r, err, "Failed to update password")
		return
	}
	s.writeSuccess(w)
}
