package web

import (
	"context"
	"net/http"
	"time"

	"github.com/vbonduro/vitrine/internal/auth"
)

type sessionKey struct{}

// sessionFrom returns the session stored by requireSession.
func sessionFrom(ctx context.Context) *auth.Session {
	sess, _ := ctx.Value(sessionKey{}).(*auth.Session)
	return sess
}

// requireSession rejects requests without a valid session cookie.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.opts.CookieName)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		sess, err := s.sessions.Verify(cookie.Value)
		if err != nil {
			s.logger.Debug("session rejected", "path", r.URL.Path, "error", err)
			s.writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Missing credentials")
		return
	}

	admin, err := s.svc.Accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, r, err, "Internal server error")
		return
	}

	token, err := s.sessions.Issue(admin.ID, admin.Username)
	if err != nil {
		s.fail(w, r, err, "Internal server error")
		return
	}
	s.setSessionCookie(w, token, auth.SessionTTL)
	s.logger.Info("admin logged in", "admin_id", admin.ID)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"admin": map[string]any{
			"id":       admin.ID,
			"username": admin.Username,
		},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	s.writeSuccess(w)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]any{
		"id":        sess.AdminID,
		"username":  sess.Username,
		"issuedAt":  sess.IssuedAt,
		"expiresAt": sess.ExpiresAt,
	})
}
