package usecase

import (
	"context"

	"github.com/phenrril/bildy-admin/internal/domain"
)

type ProjectUC struct {
	Clients  domain.ClientAPI
	Projects domain.ProjectAPI
	Notes    domain.DeliveryNoteAPI
	Activity *ActivityLog
}

type ProjectsPage struct {
	View    *ListView[domain.Project]
	Clients []domain.Client
	Notes   []domain.DeliveryNote
}

func ProjectFields(clients []domain.Client) []Field[domain.Project] {
	return []Field[domain.Project]{
		func(p domain.Project) string { return p.Name },
		func(p domain.Project) string { return ClientName(p.ClientID, clients) },
	}
}

func (p *ProjectsPage) Selected() *domain.Project {
	if pr, ok := p.View.Selected(); ok {
		return &pr
	}
	return nil
}

// SelectedNotes are the delivery notes of the project in the detail panel.
func (p *ProjectsPage) SelectedNotes() []domain.DeliveryNote {
	pr := p.Selected()
	if pr == nil {
		return nil
	}
	return NotesForProject(pr.ID, pr.ClientID.ID, p.Notes)
}

// SelectedClient is the owner of the project in the detail panel, nil when
// it is not in the fetched clients.
func (p *ProjectsPage) SelectedClient() *domain.Client {
	pr := p.Selected()
	if pr == nil {
		return nil
	}
	c, ok := FindByKey(pr.ClientID.ID, p.Clients)
	if !ok {
		return nil
	}
	return &c
}

func (p *ProjectsPage) ClientName(ref domain.Ref) string { return ClientName(ref, p.Clients) }

func (uc *ProjectUC) ListPage(ctx context.Context, s domain.Session, query, selected string) (*ProjectsPage, error) {
	var (
		clients  []domain.Client
		projects []domain.Project
		notes    []domain.DeliveryNote
	)
	err := loadAll(ctx,
		func(ctx context.Context) (err error) {
			clients, err = uc.Clients.ListClients(ctx, s)
			return err
		},
		func(ctx context.Context) (err error) {
			projects, err = uc.Projects.ListProjects(ctx, s)
			return err
		},
		func(ctx context.Context) (err error) {
			notes, err = uc.Notes.ListDeliveryNotes(ctx, s)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	p := &ProjectsPage{View: NewListView(projects, ProjectFields(clients)...), Clients: clients, Notes: notes}
	p.View.SetQuery(query)
	p.View.Select(selected)
	return p, nil
}

// NewForm loads the owner choices; clientID, when known, preselects the
// owner once the clients are in.
func (uc *ProjectUC) NewForm(ctx context.Context, s domain.Session, clientID string) (*ProjectForm, error) {
	f := &ProjectForm{Form: Form{State: FormLoading}}
	clients, err := uc.Clients.ListClients(ctx, s)
	if err != nil {
		f.LoadFailed(domain.UserMessage(err, "No se pudieron cargar los clientes"))
		return f, err
	}
	if err := ctx.Err(); err != nil {
		return f, err
	}
	f.Clients = clients
	f.PreselectClient(clientID)
	return f, f.Ready()
}

func (uc *ProjectUC) LoadForm(ctx context.Context, s domain.Session, id string) (*ProjectForm, error) {
	f := &ProjectForm{Form: Form{State: FormLoading}, ID: id}
	var (
		project *domain.Project
		clients []domain.Client
	)
	err := loadAll(ctx,
		func(ctx context.Context) (err error) {
			project, err = uc.Projects.GetProject(ctx, s, id)
			return err
		},
		func(ctx context.Context) (err error) {
			clients, err = uc.Clients.ListClients(ctx, s)
			return err
		},
	)
	if err != nil {
		f.LoadFailed(domain.UserMessage(err, "No se pudieron cargar los detalles del proyecto"))
		return f, err
	}
	f.Clients = clients
	f.Seed(*project)
	return f, f.Ready()
}

// Choices reloads the owner list for a form rebuilt from a post.
func (uc *ProjectUC) Choices(ctx context.Context, s domain.Session, f *ProjectForm) error {
	clients, err := uc.Clients.ListClients(ctx, s)
	if err != nil {
		return err
	}
	f.Clients = clients
	return ctx.Err()
}

func (uc *ProjectUC) Save(ctx context.Context, s domain.Session, f *ProjectForm) error {
	if v := f.Validate(); !v.Empty() {
		f.Invalid(v, "Por favor, completa todos los campos obligatorios.")
		return domain.ErrValidation
	}
	if err := f.Submit(); err != nil {
		return err
	}
	var (
		saved *domain.Project
		err   error
	)
	action, failMsg := domain.ActionCreate, "No se pudo crear el proyecto."
	if f.IsEdit() {
		action, failMsg = domain.ActionUpdate, "No se pudo actualizar el proyecto."
		saved, err = uc.Projects.UpdateProject(ctx, s, f.ID, f.Payload())
	} else {
		saved, err = uc.Projects.CreateProject(ctx, s, f.Payload())
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = f.Fail(domain.UserMessage(err, failMsg))
		return err
	}
	if saved == nil {
		p := f.Payload()
		p.ID = f.ID
		saved = &p
	}
	f.Saved = saved
	uc.Activity.Record(ctx, s, action, "project", saved.ID, saved.Name)
	return f.Succeed()
}

func (uc *ProjectUC) Delete(ctx context.Context, s domain.Session, page *ProjectsPage, id string) error {
	label := ProjectName(domain.RefTo(id), page.View.All())
	if err := uc.Projects.DeleteProject(ctx, s, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	page.View.Remove(id)
	uc.Activity.Record(ctx, s, domain.ActionDelete, "project", id, label)
	return nil
}
