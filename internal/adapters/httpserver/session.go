package httpserver

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/phenrril/bildy-admin/internal/domain"
)

const sessionCookie = "bildy_sess"

type ctxKey int

const (
	ctxSession ctxKey = iota
	ctxRequestID
)

func (s *Server) sign(b []byte) string {
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(b)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func (s *Server) writeSession(w http.ResponseWriter, sess *domain.Session) {
	if sess == nil {
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: s.secureCookies, SameSite: http.SameSiteLaxMode})
		return
	}
	b, _ := json.Marshal(sess)
	val := s.sign(b) + "." + base64.RawURLEncoding.EncodeToString(b)
	c := &http.Cookie{Name: sessionCookie, Value: val, Path: "/", HttpOnly: true, Secure: s.secureCookies, SameSite: http.SameSiteLaxMode}
	if !sess.ExpiresAt.IsZero() {
		c.Expires = sess.ExpiresAt
	}
	http.SetCookie(w, c)
}

// readSession returns the signed session from the request cookie. It does
// not check expiry.
func (s *Server) readSession(r *http.Request) (domain.Session, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return domain.Session{}, false
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return domain.Session{}, false
	}
	sig, _ := base64.RawURLEncoding.DecodeString(parts[0])
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return domain.Session{}, false
	}
	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return domain.Session{}, false
	}
	return sess, true
}

// RequireSession sends visitors without a usable session to the login page
// and hands the session to the handler through the request context.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.readSession(r)
		if !ok || !sess.Valid(s.now()) {
			s.toLogin(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSession, sess)))
	})
}

func sessionFrom(r *http.Request) domain.Session {
	sess, _ := r.Context().Value(ctxSession).(domain.Session)
	return sess
}

func (s *Server) toLogin(w http.ResponseWriter, r *http.Request) {
	s.writeSession(w, nil)
	target := "/login"
	if r.Method == http.MethodGet && r.URL.Path != "/" {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/clients"
	}
	return next
}
