package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/bildy-admin/internal/domain"
	"github.com/phenrril/bildy-admin/internal/usecase"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.readSession(r); ok && sess.Valid(s.now()) {
		http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusFound)
		return
	}
	s.render(w, r, "login.html", map[string]any{"Next": r.URL.Query().Get("next")})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	next := r.PostForm.Get("next")
	data := map[string]any{"Email": email, "Next": next}

	sess, err := s.auth.Login(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		code := http.StatusBadGateway
		msg := domain.UserMessage(err, "No se pudo iniciar sesión")
		switch {
		case errors.Is(err, usecase.ErrMissingCredentials):
			code, msg = http.StatusBadRequest, "Introduce tu email y contraseña"
		case errors.Is(err, domain.ErrUnauthenticated):
			code = http.StatusUnauthorized
		default:
			log.Error().Err(err).Str("req_id", requestID(r)).Msg("login")
		}
		data["Error"] = msg
		s.renderStatus(w, r, code, "login.html", data)
		return
	}
	s.writeSession(w, &sess)
	log.Info().Str("email", sess.Email).Msg("login")
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.writeSession(w, nil)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
