package web

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// parentRef accepts a parent category given as a JSON number, a string
// ("root" or digits) or null.
type parentRef string

func (p *parentRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = parentRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = parentRef(n.String())
	return nil
}

type createCategoryRequest struct {
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	ParentID parentRef `json:"parentId"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.Categories.List(r.Context(), r.URL.Query().Get("parentId"))
	if err != nil {
		s.fail(w, r, err, "Failed to fetch categories")
		return
	}
	s.writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cat, err := s.svc.Categories.Create(r.Context(), req.Name, req.Icon, string(req.ParentID))
	if err != nil {
		s.fail(w, r, err, "Failed to create category")
		return
	}
	s.writeJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := s.svc.Categories.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "Failed to delete category")
		return
	}
	s.writeSuccess(w)
}
