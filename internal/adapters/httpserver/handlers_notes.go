package httpserver

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/bildy-admin/internal/adapters/export"
	"github.com/phenrril/bildy-admin/internal/usecase"
)

func notesData(page *usecase.DeliveryNotesPage) map[string]any {
	return map[string]any{
		"Section": "deliverynotes",
		"Page":    page,
		"Query":   page.View.Query(),
	}
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	page, err := s.notes.ListPage(r.Context(), sessionFrom(r), q)
	if err != nil {
		s.fail(w, r, err, "deliverynotes.html", "Error al obtener los albaranes", map[string]any{"Section": "deliverynotes", "Query": q})
		return
	}
	s.render(w, r, "deliverynotes.html", notesData(page))
}

func (s *Server) handleNotesExport(w http.ResponseWriter, r *http.Request) {
	page, err := s.notes.ListPage(r.Context(), sessionFrom(r), r.URL.Query().Get("q"))
	if err != nil {
		s.fail(w, r, err, "error.html", "Error al exportar los albaranes", map[string]any{"Section": "deliverynotes"})
		return
	}
	b, err := export.Bytes(func(w io.Writer) error { return export.DeliveryNotes(w, page) })
	if err != nil {
		log.Error().Err(err).Msg("export delivery notes")
		http.Error(w, "export", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, export.ContentType, "albaranes.xlsx", b)
}

func (s *Server) handleNoteNew(w http.ResponseWriter, r *http.Request) {
	f, err := s.notes.NewForm(r.Context(), sessionFrom(r))
	data := map[string]any{"Section": "deliverynotes", "Form": f}
	if err != nil {
		s.fail(w, r, err, "deliverynote_form.html", f.Message, data)
		return
	}
	s.render(w, r, "deliverynote_form.html", data)
}

// handleNoteSave also serves the refresh posts the form sends when the
// client or format changes, so the project choices and the required
// quantity field follow the selection.
func (s *Server) handleNoteSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r)
	f, err := s.notes.NewForm(r.Context(), sess)
	data := map[string]any{"Section": "deliverynotes", "Form": f}
	if err != nil {
		s.fail(w, r, err, "deliverynote_form.html", f.Message, data)
		return
	}
	f.Bind(r.PostForm)
	if r.PostForm.Get("intent") == "refresh" || r.PostForm.Get("refresh") != "" {
		s.render(w, r, "deliverynote_form.html", data)
		return
	}
	if err := s.notes.Save(r.Context(), sess, f); err != nil {
		s.formError(w, r, err, "deliverynote_form.html", data)
		return
	}
	s.render(w, r, "deliverynote_form.html", data)
}

func (s *Server) handleNoteDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r)
	page, err := s.notes.ListPage(r.Context(), sess, r.PostForm.Get("q"))
	if err != nil {
		s.fail(w, r, err, "deliverynotes.html", "Error al obtener los albaranes", map[string]any{"Section": "deliverynotes"})
		return
	}
	if err := s.notes.Delete(r.Context(), sess, page, mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err, "deliverynotes.html", "Error al eliminar el albarán", notesData(page))
		return
	}
	data := notesData(page)
	data["Flash"] = "Albarán eliminado"
	s.render(w, r, "deliverynotes.html", data)
}

func (s *Server) handleNotePDF(w http.ResponseWriter, r *http.Request) {
	b, name, err := s.notes.PDF(r.Context(), sessionFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err, "error.html", "Error al descargar el albarán", map[string]any{"Section": "deliverynotes"})
		return
	}
	writeAttachment(w, "application/pdf", name, b)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	list, err := s.activity.Recent(r.Context(), 100)
	if err != nil {
		s.fail(w, r, err, "activity.html", "No se pudo leer el registro de actividad", map[string]any{"Section": "activity"})
		return
	}
	s.render(w, r, "activity.html", map[string]any{"Section": "activity", "Entries": list, "Enabled": s.activity.Enabled()})
}
