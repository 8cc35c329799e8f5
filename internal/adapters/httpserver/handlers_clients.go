package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/bildy-admin/internal/adapters/export"
	"github.com/phenrril/bildy-admin/internal/domain"
	"github.com/phenrril/bildy-admin/internal/usecase"
)

func (s *Server) clientsData(r *http.Request, page *usecase.ClientsPage) map[string]any {
	data := map[string]any{
		"Section": "clients",
		"Page":    page,
		"Query":   page.View.Query(),
	}
	if sel := page.Selected(); sel != nil {
		data["Selected"] = sel
		data["SelectedProjects"] = page.SelectedProjects()
		data["History"] = s.history(r, "client", sel.ID)
	}
	return data
}

// history is best effort; the detail panel renders without it.
func (s *Server) history(r *http.Request, entity, id string) []domain.Activity {
	list, err := s.activity.History(r.Context(), entity, id)
	if err != nil {
		log.Warn().Err(err).Str("entity", entity).Str("id", id).Msg("activity history")
		return nil
	}
	return list
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := s.clients.ListPage(r.Context(), sessionFrom(r), q.Get("q"), q.Get("selected"))
	if err != nil {
		s.fail(w, r, err, "clients.html", "Error al obtener los clientes", map[string]any{"Section": "clients", "Query": q.Get("q")})
		return
	}
	s.render(w, r, "clients.html", s.clientsData(r, page))
}

func (s *Server) handleClientsExport(w http.ResponseWriter, r *http.Request) {
	page, err := s.clients.ListPage(r.Context(), sessionFrom(r), r.URL.Query().Get("q"), "")
	if err != nil {
		s.fail(w, r, err, "error.html", "Error al exportar los clientes", map[string]any{"Section": "clients"})
		return
	}
	b, err := export.Bytes(func(w io.Writer) error { return export.Clients(w, page.View.Items()) })
	if err != nil {
		log.Error().Err(err).Msg("export clients")
		http.Error(w, "export", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, export.ContentType, "clientes.xlsx", b)
}

func (s *Server) handleClientNew(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "client_form.html", map[string]any{"Section": "clients", "Form": usecase.NewClientForm()})
}

func (s *Server) handleClientEdit(w http.ResponseWriter, r *http.Request) {
	f, err := s.clients.LoadForm(r.Context(), sessionFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err, "client_form.html", f.Message, map[string]any{"Section": "clients", "Form": f})
		return
	}
	s.render(w, r, "client_form.html", map[string]any{"Section": "clients", "Form": f})
}

func (s *Server) handleClientSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	f := usecase.NewClientForm()
	f.ID = mux.Vars(r)["id"]
	f.Bind(r.PostForm)
	data := map[string]any{"Section": "clients", "Form": f}
	if err := s.clients.Save(r.Context(), sessionFrom(r), f); err != nil {
		s.formError(w, r, err, "client_form.html", data)
		return
	}
	s.render(w, r, "client_form.html", data)
}

func (s *Server) handleClientDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r)
	page, err := s.clients.ListPage(r.Context(), sess, r.PostForm.Get("q"), r.PostForm.Get("selected"))
	if err != nil {
		s.fail(w, r, err, "clients.html", "Error al obtener los clientes", map[string]any{"Section": "clients"})
		return
	}
	if err := s.clients.Delete(r.Context(), sess, page, mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err, "clients.html", "No se pudo eliminar el cliente", s.clientsData(r, page))
		return
	}
	data := s.clientsData(r, page)
	data["Flash"] = "Cliente eliminado"
	s.render(w, r, "clients.html", data)
}

// formError renders a form again after a failed save. Validation failures
// never reached the API.
func (s *Server) formError(w http.ResponseWriter, r *http.Request, err error, tpl string, data map[string]any) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		s.renderStatus(w, r, http.StatusUnprocessableEntity, tpl, data)
	case errors.Is(err, domain.ErrUnauthenticated):
		s.toLogin(w, r)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("req_id", requestID(r)).Msg("save")
		s.renderStatus(w, r, http.StatusBadGateway, tpl, data)
	}
}

func writeAttachment(w http.ResponseWriter, contentType, name string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleConfirmDelete(kind string) http.HandlerFunc {
	titles := map[string]string{
		"client":       "¿Seguro que quieres eliminar este cliente?",
		"project":      "¿Seguro que quieres eliminar este proyecto?",
		"deliverynote": "¿Seguro que quieres eliminar este albarán?",
	}
	sections := map[string]string{"client": "clients", "project": "projects", "deliverynote": "deliverynotes"}
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		section := sections[kind]
		s.render(w, r, "confirm.html", map[string]any{
			"Section":  section,
			"Title":    titles[kind],
			"Action":   r.URL.Path,
			"Back":     "/" + section,
			"Query":    q.Get("q"),
			"Selected": q.Get("selected"),
		})
	}
}
