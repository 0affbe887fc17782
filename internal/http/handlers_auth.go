package http

import (
	"log/slog"
	"net/http"
	"time"

	"baile/internal/auth"
)

// requireAuth redirects to the login page unless the request carries a
// valid session cookie. With auth disabled every request passes.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.auth == nil || !s.auth.Enabled() {
			next(w, r)
			return
		}
		c, err := r.Cookie(auth.SessionCookie)
		if err != nil || !s.auth.ValidateToken(c.Value, time.Now()) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.auth == nil || !s.auth.Enabled() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.renderLogin(w, r, "", http.StatusOK)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			slog.ErrorContext(r.Context(), "Parse login form error", "error", err)
			s.renderLogin(w, r, "Requisição inválida", http.StatusBadRequest)
			return
		}
		username := sanitizeInput(r.Form.Get("username"))
		password := r.Form.Get("password")
		if !s.auth.Verify(username, password) {
			slog.WarnContext(r.Context(), "Login failed", "username", username, "client_ip", extractClientIP(r))
			s.renderLogin(w, r, "Usuário ou senha incorretos", http.StatusUnauthorized)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookie,
			Value:    s.auth.IssueToken(time.Now()),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		slog.InfoContext(r.Context(), "Login succeeded", "username", username)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, errMsg string, status int) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	data := struct {
		Error string
	}{Error: errMsg}
	if err := s.templates.ExecuteTemplate(w, "login.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Login template execution failed", "error", err)
	}
}
