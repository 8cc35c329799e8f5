package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/bildy-admin/internal/domain"
	"github.com/phenrril/bildy-admin/internal/usecase"
)

type Server struct {
	router   *mux.Router
	tmpl     *template.Template
	auth     *usecase.AuthUC
	clients  *usecase.ClientUC
	projects *usecase.ProjectUC
	notes    *usecase.DeliveryNoteUC
	activity *usecase.ActivityLog

	sessionKey    []byte
	secureCookies bool
	now           func() time.Time
}

type Deps struct {
	Auth     *usecase.AuthUC
	Clients  *usecase.ClientUC
	Projects *usecase.ProjectUC
	Notes    *usecase.DeliveryNoteUC
	Activity *usecase.ActivityLog

	SessionKey    string
	SecureCookies bool
	Now           func() time.Time
}

func New(t *template.Template, d Deps) http.Handler {
	return NewServer(t, d).Handler()
}

func NewServer(t *template.Template, d Deps) *Server {
	key := d.SessionKey
	if key == "" {
		key = "dev-insecure"
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	s := &Server{
		router:        mux.NewRouter(),
		tmpl:          t,
		auth:          d.Auth,
		clients:       d.Clients,
		projects:      d.Projects,
		notes:         d.Notes,
		activity:      d.Activity,
		sessionKey:    []byte(key),
		secureCookies: d.SecureCookies,
		now:           now,
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return Chain(s.router,
		RequestID,
		Logging,
		Recovery,
		SecurityHeaders,
	)
}

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost, http.MethodGet)

	app := r.NewRoute().Subrouter()
	app.Use(s.RequireSession)
	app.HandleFunc("/", s.handleHome).Methods(http.MethodGet)

	app.HandleFunc("/clients", s.handleClients).Methods(http.MethodGet)
	app.HandleFunc("/clients/export.xlsx", s.handleClientsExport).Methods(http.MethodGet)
	app.HandleFunc("/clients/new", s.handleClientNew).Methods(http.MethodGet)
	app.HandleFunc("/clients/new", s.handleClientSave).Methods(http.MethodPost)
	app.HandleFunc("/clients/{id}/edit", s.handleClientEdit).Methods(http.MethodGet)
	app.HandleFunc("/clients/{id}/edit", s.handleClientSave).Methods(http.MethodPost)
	app.HandleFunc("/clients/{id}/delete", s.handleConfirmDelete("client")).Methods(http.MethodGet)
	app.HandleFunc("/clients/{id}/delete", s.handleClientDelete).Methods(http.MethodPost)

	app.HandleFunc("/projects", s.handleProjects).Methods(http.MethodGet)
	app.HandleFunc("/projects/new", s.handleProjectNew).Methods(http.MethodGet)
	app.HandleFunc("/projects/new", s.handleProjectSave).Methods(http.MethodPost)
	app.HandleFunc("/projects/{id}/edit", s.handleProjectEdit).Methods(http.MethodGet)
	app.HandleFunc("/projects/{id}/edit", s.handleProjectSave).Methods(http.MethodPost)
	app.HandleFunc("/projects/{id}/delete", s.handleConfirmDelete("project")).Methods(http.MethodGet)
	app.HandleFunc("/projects/{id}/delete", s.handleProjectDelete).Methods(http.MethodPost)

	app.HandleFunc("/deliverynotes", s.handleNotes).Methods(http.MethodGet)
	app.HandleFunc("/deliverynotes/export.xlsx", s.handleNotesExport).Methods(http.MethodGet)
	app.HandleFunc("/deliverynotes/new", s.handleNoteNew).Methods(http.MethodGet)
	app.HandleFunc("/deliverynotes/new", s.handleNoteSave).Methods(http.MethodPost)
	app.HandleFunc("/deliverynotes/{id}/pdf", s.handleNotePDF).Methods(http.MethodGet)
	app.HandleFunc("/deliverynotes/{id}/delete", s.handleConfirmDelete("deliverynote")).Methods(http.MethodGet)
	app.HandleFunc("/deliverynotes/{id}/delete", s.handleNoteDelete).Methods(http.MethodPost)

	app.HandleFunc("/activity", s.handleActivity).Methods(http.MethodGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "activity": s.activity.Enabled()})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/clients", http.StatusFound)
}

// render executes a page template. Every page gets the signed-in email, the
// active section and the year.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	s.renderStatus(w, r, http.StatusOK, name, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, code int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	for _, k := range []string{"Section", "Query", "Title"} {
		if _, ok := data[k]; !ok {
			data[k] = ""
		}
	}
	if _, ok := data["Year"]; !ok {
		data["Year"] = s.now().Year()
	}
	if sess := sessionFrom(r); sess.Token != "" {
		data["User"] = sess.Email
	}
	data["ActivityEnabled"] = s.activity.Enabled()
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Str("req_id", requestID(r)).Msg("render")
		http.Error(w, "tpl", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// fail handles an error from a remote call. A lost session goes back to the
// login page; anything else is logged and rendered in place of the content.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, tpl, msg string, data map[string]any) {
	if errors.Is(err, domain.ErrUnauthenticated) {
		s.toLogin(w, r)
		return
	}
	if r.Context().Err() != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("request cancelled")
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Str("req_id", requestID(r)).Msg("api")
	if data == nil {
		data = map[string]any{}
	}
	data["Error"] = domain.UserMessage(err, msg)
	s.renderStatus(w, r, statusFor(err), tpl, data)
}

func statusFor(err error) int {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
