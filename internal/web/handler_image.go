package web

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/vitrine/internal/assetstore"
	"github.com/vbonduro/vitrine/internal/domain"
	"github.com/vbonduro/vitrine/internal/service"
)

// allowedImageTypes is the set of MIME types accepted for uploads.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniffing algorithm (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// parsePrice returns nil for an empty, unparseable or non-finite price.
func parsePrice(v string) *float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(p, 0) || math.IsNaN(p) {
		return nil
	}
	return &p
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categoryID, err := parseOptionalID(q.Get("categoryId"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid categoryId")
		return
	}
	subcategoryID, err := parseOptionalID(q.Get("subcategoryId"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid subcategoryId")
		return
	}

	images, err := s.svc.Images.List(r.Context(), domain.ImageFilter{
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
	})
	if err != nil {
		s.fail(w, r, err, "Failed to fetch images")
		return
	}
	s.writeJSON(w, http.StatusOK, images)
}

func (s *Server) handleCreateImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	title := r.FormValue("title")
	rawCategory := strings.TrimSpace(r.FormValue("categoryId"))
	if strings.TrimSpace(title) == "" || rawCategory == "" {
		s.writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	categoryID, err := strconv.ParseInt(rawCategory, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid categoryId")
		return
	}
	subcategoryID, err := parseOptionalID(strings.TrimSpace(r.FormValue("subcategoryId")))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid subcategoryId")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, err, "Failed to upload image")
		return
	}
	mimeType, ok := allowedImageMIME(data)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unsupported image format")
		return
	}

	img, err := s.svc.Images.Create(r.Context(), service.NewImage{
		Title:         title,
		Data:          data,
		MimeType:      mimeType,
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		Price:         parsePrice(r.FormValue("price")),
	})
	if err != nil {
		s.fail(w, r, err, "Failed to upload image")
		return
	}
	s.writeJSON(w, http.StatusCreated, img)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid image id")
		return
	}

	if err := s.svc.Images.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "Failed to delete image")
		return
	}
	s.writeSuccess(w)
}

func (s *Server) handleIncrementViews(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid image id")
		return
	}

	img, err := s.svc.Images.IncrementViews(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "Failed to update image")
		return
	}
	s.writeJSON(w, http.StatusOK, img)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	reader, mimeType, err := s.assets.Open(r.Context(), key)
	if errors.Is(err, assetstore.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.logger.Warn("open asset failed", "key", key, "error", err)
		s.writeError(w, http.StatusNotFound, "Not found")
		return
	}
	defer closeWithLog(reader, "asset reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write asset failed", "key", key, "error", err)
	}
}
