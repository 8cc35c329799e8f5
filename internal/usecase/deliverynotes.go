package usecase

import (
	"context"

	"github.com/phenrril/bildy-admin/internal/domain"
)

type DeliveryNoteUC struct {
	Clients  domain.ClientAPI
	Projects domain.ProjectAPI
	Notes    domain.DeliveryNoteAPI
	Activity *ActivityLog
}

type DeliveryNotesPage struct {
	View     *ListView[domain.DeliveryNote]
	Clients  []domain.Client
	Projects []domain.Project
}

// DeliveryNoteFields searches a note by its resolved client and project
// names and its description.
func DeliveryNoteFields(clients []domain.Client, projects []domain.Project) []Field[domain.DeliveryNote] {
	return []Field[domain.DeliveryNote]{
		func(n domain.DeliveryNote) string { return ClientName(n.ClientID, clients) },
		func(n domain.DeliveryNote) string { return ProjectName(n.ProjectID, projects) },
		func(n domain.DeliveryNote) string { return n.Description },
	}
}

func (p *DeliveryNotesPage) ClientName(ref domain.Ref) string  { return ClientName(ref, p.Clients) }
func (p *DeliveryNotesPage) ProjectName(ref domain.Ref) string { return ProjectName(ref, p.Projects) }

// catalog fetches the three collections a note page joins.
func (uc *DeliveryNoteUC) catalog(ctx context.Context, s domain.Session, withNotes bool) ([]domain.Client, []domain.Project, []domain.DeliveryNote, error) {
	var (
		clients  []domain.Client
		projects []domain.Project
		notes    []domain.DeliveryNote
	)
	fetches := []func(context.Context) error{
		func(ctx context.Context) (err error) {
			clients, err = uc.Clients.ListClients(ctx, s)
			return err
		},
		func(ctx context.Context) (err error) {
			projects, err = uc.Projects.ListProjects(ctx, s)
			return err
		},
	}
	if withNotes {
		fetches = append(fetches, func(ctx context.Context) (err error) {
			notes, err = uc.Notes.ListDeliveryNotes(ctx, s)
			return err
		})
	}
	if err := loadAll(ctx, fetches...); err != nil {
		return nil, nil, nil, err
	}
	return clients, projects, notes, nil
}

func (uc *DeliveryNoteUC) ListPage(ctx context.Context, s domain.Session, query string) (*DeliveryNotesPage, error) {
	clients, projects, notes, err := uc.catalog(ctx, s, true)
	if err != nil {
		return nil, err
	}
	p := &DeliveryNotesPage{
		View:     NewListView(notes, DeliveryNoteFields(clients, projects)...),
		Clients:  clients,
		Projects: projects,
	}
	p.View.SetQuery(query)
	return p, nil
}

func (uc *DeliveryNoteUC) NewForm(ctx context.Context, s domain.Session) (*DeliveryNoteForm, error) {
	clients, projects, _, err := uc.catalog(ctx, s, false)
	if err != nil {
		f := &DeliveryNoteForm{Form: Form{State: FormLoading}}
		f.LoadFailed(domain.UserMessage(err, "Error al cargar datos"))
		return f, err
	}
	return NewDeliveryNoteForm(clients, projects), nil
}

func (uc *DeliveryNoteUC) Save(ctx context.Context, s domain.Session, f *DeliveryNoteForm) error {
	if v := f.Validate(); !v.Empty() {
		f.Invalid(v, msgNoteRequired)
		return domain.ErrValidation
	}
	if err := f.Submit(); err != nil {
		return err
	}
	saved, err := uc.Notes.CreateDeliveryNote(ctx, s, f.Payload())
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = f.Fail(domain.UserMessage(err, "Error al crear el albarán"))
		return err
	}
	if saved == nil {
		n := f.Payload()
		saved = &n
	}
	f.Saved = saved
	uc.Activity.Record(ctx, s, domain.ActionCreate, "deliverynote", saved.ID, f.Description)
	return f.Succeed()
}

func (uc *DeliveryNoteUC) Delete(ctx context.Context, s domain.Session, page *DeliveryNotesPage, id string) error {
	var label string
	if n, ok := FindByKey(id, page.View.All()); ok {
		label = n.Description
	}
	if err := uc.Notes.DeleteDeliveryNote(ctx, s, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	page.View.Remove(id)
	uc.Activity.Record(ctx, s, domain.ActionDelete, "deliverynote", id, label)
	return nil
}

// PDF fetches the server-rendered note and its download name.
func (uc *DeliveryNoteUC) PDF(ctx context.Context, s domain.Session, id string) ([]byte, string, error) {
	b, err := uc.Notes.DeliveryNotePDF(ctx, s, id)
	if err != nil {
		return nil, "", err
	}
	uc.Activity.Record(ctx, s, domain.ActionPrint, "deliverynote", id, "")
	return b, domain.PDFName(id), nil
}
