package usecase

import (
	"context"

	"github.com/phenrril/bildy-admin/internal/domain"
)

type ClientUC struct {
	Clients  domain.ClientAPI
	Projects domain.ProjectAPI
	Activity *ActivityLog
}

type ClientsPage struct {
	View     *ListView[domain.Client]
	Projects []domain.Project
}

func ClientFields() []Field[domain.Client] {
	return []Field[domain.Client]{
		func(c domain.Client) string { return c.Name },
	}
}

func (p *ClientsPage) Selected() *domain.Client {
	if c, ok := p.View.Selected(); ok {
		return &c
	}
	return nil
}

// SelectedProjects lists the projects owned by the client in the detail panel.
func (p *ClientsPage) SelectedProjects() []domain.Project {
	return ProjectsForClient(p.View.SelectedID(), p.Projects)
}

// ListPage fetches clients and projects concurrently and applies the query
// and detail selection.
func (uc *ClientUC) ListPage(ctx context.Context, s domain.Session, query, selected string) (*ClientsPage, error) {
	var (
		clients  []domain.Client
		projects []domain.Project
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
	)
	if err != nil {
		return nil, err
	}
	p := &ClientsPage{View: NewListView(clients, ClientFields()...), Projects: projects}
	p.View.SetQuery(query)
	p.View.Select(selected)
	return p, nil
}

// LoadForm seeds an edit form from the stored client.
func (uc *ClientUC) LoadForm(ctx context.Context, s domain.Session, id string) (*ClientForm, error) {
	f := &ClientForm{Form: Form{State: FormLoading}, ID: id}
	c, err := uc.Clients.GetClient(ctx, s, id)
	if err != nil {
		f.LoadFailed(domain.UserMessage(err, "No se pudo cargar la información del cliente"))
		return f, err
	}
	if err := ctx.Err(); err != nil {
		return f, err
	}
	f.Seed(*c)
	return f, f.Ready()
}

// Save validates, then creates or updates. Validation failures return
// domain.ErrValidation without touching the API.
func (uc *ClientUC) Save(ctx context.Context, s domain.Session, f *ClientForm) error {
	if v := f.Validate(); !v.Empty() {
		f.Invalid(v, msgRequiredFields)
		return domain.ErrValidation
	}
	if err := f.Submit(); err != nil {
		return err
	}
	var (
		saved *domain.Client
		err   error
	)
	action, failMsg := domain.ActionCreate, "No se pudo crear el cliente"
	if f.IsEdit() {
		action, failMsg = domain.ActionUpdate, "No se pudo actualizar el cliente"
		saved, err = uc.Clients.UpdateClient(ctx, s, f.ID, f.Payload())
	} else {
		saved, err = uc.Clients.CreateClient(ctx, s, f.Payload())
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = f.Fail(domain.UserMessage(err, failMsg))
		return err
	}
	if saved == nil {
		c := f.Payload()
		c.ID = f.ID
		saved = &c
	}
	f.Saved = saved
	uc.Activity.Record(ctx, s, action, "client", saved.ID, saved.Name)
	return f.Succeed()
}

// Delete removes the client remotely and, once confirmed, from the page.
func (uc *ClientUC) Delete(ctx context.Context, s domain.Session, page *ClientsPage, id string) error {
	label := ClientName(domain.RefTo(id), page.View.All())
	if err := uc.Clients.DeleteClient(ctx, s, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	page.View.Remove(id)
	uc.Activity.Record(ctx, s, domain.ActionDelete, "client", id, label)
	return nil
}
