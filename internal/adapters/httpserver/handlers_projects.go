package httpserver

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/phenrril/bildy-admin/internal/domain"
	"github.com/phenrril/bildy-admin/internal/usecase"
)

func (s *Server) projectsData(r *http.Request, page *usecase.ProjectsPage) map[string]any {
	data := map[string]any{
		"Section": "projects",
		"Page":    page,
		"Query":   page.View.Query(),
	}
	if sel := page.Selected(); sel != nil {
		data["Selected"] = sel
		data["SelectedNotes"] = page.SelectedNotes()
		data["SelectedClient"] = page.SelectedClient()
		data["History"] = s.history(r, "project", sel.ID)
	}
	return data
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := s.projects.ListPage(r.Context(), sessionFrom(r), q.Get("q"), q.Get("selected"))
	if err != nil {
		s.fail(w, r, err, "projects.html", "Error al obtener los proyectos", map[string]any{"Section": "projects", "Query": q.Get("q")})
		return
	}
	s.render(w, r, "projects.html", s.projectsData(r, page))
}

func (s *Server) handleProjectNew(w http.ResponseWriter, r *http.Request) {
	f, err := s.projects.NewForm(r.Context(), sessionFrom(r), r.URL.Query().Get("clientId"))
	data := map[string]any{"Section": "projects", "Form": f}
	if err != nil {
		s.fail(w, r, err, "project_form.html", f.Message, data)
		return
	}
	s.render(w, r, "project_form.html", data)
}

func (s *Server) handleProjectEdit(w http.ResponseWriter, r *http.Request) {
	f, err := s.projects.LoadForm(r.Context(), sessionFrom(r), mux.Vars(r)["id"])
	data := map[string]any{"Section": "projects", "Form": f}
	if err != nil {
		s.fail(w, r, err, "project_form.html", f.Message, data)
		return
	}
	s.render(w, r, "project_form.html", data)
}

func (s *Server) handleProjectSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r)
	f := usecase.NewProjectForm(nil)
	f.ID = mux.Vars(r)["id"]
	f.Bind(r.PostForm)
	data := map[string]any{"Section": "projects", "Form": f}
	if err := s.projects.Save(r.Context(), sess, f); err != nil {
		// the owner selector needs its choices again
		if cerr := s.projects.Choices(r.Context(), sess, f); cerr != nil && errors.Is(cerr, domain.ErrUnauthenticated) {
			err = cerr
		}
		s.formError(w, r, err, "project_form.html", data)
		return
	}
	s.render(w, r, "project_form.html", data)
}

func (s *Server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r)
	page, err := s.projects.ListPage(r.Context(), sess, r.PostForm.Get("q"), r.PostForm.Get("selected"))
	if err != nil {
		s.fail(w, r, err, "projects.html", "Error al obtener los proyectos", map[string]any{"Section": "projects"})
		return
	}
	if err := s.projects.Delete(r.Context(), sess, page, mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err, "projects.html", "No se pudo eliminar el proyecto", s.projectsData(r, page))
		return
	}
	data := s.projectsData(r, page)
	data["Flash"] = "Proyecto eliminado"
	s.render(w, r, "projects.html", data)
}
