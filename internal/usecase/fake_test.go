package usecase

import (
	"context"
	"net/http"
	"sync"

	"github.com/phenrril/bildy-admin/internal/domain"
)

// fakeAPI is an in-memory stand-in for the remote API that counts calls.
type fakeAPI struct {
	mu       sync.Mutex
	clients  []domain.Client
	projects []domain.Project
	notes    []domain.DeliveryNote
	calls    map[string]int
	fail     map[string]error
	created  []any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		clients: []domain.Client{
			{ID: "c1", Name: "Acme", CIF: "B123", Address: domain.Address{Street: "Main St, 5", Postal: "28001", City: "Madrid", Province: "Madrid"}},
			{ID: "c2", Name: "Globex", CIF: "B456", Address: domain.Address{Street: "Diagonal, 100", City: "Barcelona"}},
		},
		projects: []domain.Project{
			{ID: "p1", Name: "Reforma oficina", ClientID: domain.RefTo("c1")},
			{ID: "p2", Name: "Nave industrial", ClientID: domain.RefTo("c2")},
			{ID: "p3", Name: "Local comercial", ClientID: domain.RefTo("c1")},
		},
		notes: []domain.DeliveryNote{
			{ID: "n1", ClientID: domain.RefTo("c1"), ProjectID: domain.Ref{ID: "p1", Name: "Reforma oficina"}, Format: domain.FormatMaterial, Material: "Cemento", Description: "Entrega de cemento", WorkDate: "2024-03-01"},
			{ID: "n2", ClientID: domain.RefTo("c2"), ProjectID: domain.RefTo("p2"), Format: domain.FormatHours, Description: "Montaje estructura", WorkDate: "2024-03-02"},
			{ID: "n3", ClientID: domain.RefTo("c1"), ProjectID: domain.RefTo("p3"), Format: domain.FormatHours, Description: "Pintura", WorkDate: "2024-03-03"},
		},
		calls: map[string]int{},
		fail:  map[string]error{},
	}
}

func (f *fakeAPI) hit(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) Login(ctx context.Context, c domain.Credentials) (domain.Session, error) {
	if err := f.hit("Login"); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: "tok"}, nil
}

func (f *fakeAPI) ListClients(ctx context.Context, s domain.Session) ([]domain.Client, error) {
	if err := f.hit("ListClients"); err != nil {
		return nil, err
	}
	return append([]domain.Client(nil), f.clients...), nil
}

func (f *fakeAPI) GetClient(ctx context.Context, s domain.Session, id string) (*domain.Client, error) {
	if err := f.hit("GetClient"); err != nil {
		return nil, err
	}
	for _, c := range f.clients {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, &domain.APIError{Op: "get client", Status: http.StatusNotFound, Message: "Cliente no encontrado"}
}

func (f *fakeAPI) CreateClient(ctx context.Context, s domain.Session, c domain.Client) (*domain.Client, error) {
	if err := f.hit("CreateClient"); err != nil {
		return nil, err
	}
	f.created = append(f.created, c)
	c.ID = "new-client"
	return &c, nil
}

func (f *fakeAPI) UpdateClient(ctx context.Context, s domain.Session, id string, c domain.Client) (*domain.Client, error) {
	if err := f.hit("UpdateClient"); err != nil {
		return nil, err
	}
	f.created = append(f.created, c)
	c.ID = id
	return &c, nil
}

func (f *fakeAPI) DeleteClient(ctx context.Context, s domain.Session, id string) error {
	return f.hit("DeleteClient")
}

func (f *fakeAPI) ListProjects(ctx context.Context, s domain.Session) ([]domain.Project, error) {
	if err := f.hit("ListProjects"); err != nil {
		return nil, err
	}
	return append([]domain.Project(nil), f.projects...), nil
}

func (f *fakeAPI) GetProject(ctx context.Context, s domain.Session, id string) (*domain.Project, error) {
	if err := f.hit("GetProject"); err != nil {
		return nil, err
	}
	for _, p := range f.projects {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, &domain.APIError{Op: "get project", Status: http.StatusNotFound}
}

func (f *fakeAPI) CreateProject(ctx context.Context, s domain.Session, p domain.Project) (*domain.Project, error) {
	if err := f.hit("CreateProject"); err != nil {
		return nil, err
	}
	f.created = append(f.created, p)
	p.ID = "new-project"
	return &p, nil
}

func (f *fakeAPI) UpdateProject(ctx context.Context, s domain.Session, id string, p domain.Project) (*domain.Project, error) {
	if err := f.hit("UpdateProject"); err != nil {
		return nil, err
	}
	f.created = append(f.created, p)
	p.ID = id
	return &p, nil
}

func (f *fakeAPI) DeleteProject(ctx context.Context, s domain.Session, id string) error {
	return f.hit("DeleteProject")
}

func (f *fakeAPI) ListDeliveryNotes(ctx context.Context, s domain.Session) ([]domain.DeliveryNote, error) {
	if err := f.hit("ListDeliveryNotes"); err != nil {
		return nil, err
	}
	return append([]domain.DeliveryNote(nil), f.notes...), nil
}

func (f *fakeAPI) CreateDeliveryNote(ctx context.Context, s domain.Session, n domain.DeliveryNote) (*domain.DeliveryNote, error) {
	if err := f.hit("CreateDeliveryNote"); err != nil {
		return nil, err
	}
	f.created = append(f.created, n)
	n.ID = "new-note"
	return &n, nil
}

func (f *fakeAPI) DeleteDeliveryNote(ctx context.Context, s domain.Session, id string) error {
	return f.hit("DeleteDeliveryNote")
}

func (f *fakeAPI) DeliveryNotePDF(ctx context.Context, s domain.Session, id string) ([]byte, error) {
	if err := f.hit("DeliveryNotePDF"); err != nil {
		return nil, err
	}
	return []byte("%PDF-1.4"), nil
}

type memActivity struct {
	mu      sync.Mutex
	entries []domain.Activity
	err     error
}

func (m *memActivity) Record(ctx context.Context, a *domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *a)
	return nil
}

func (m *memActivity) Recent(ctx context.Context, limit int) ([]domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) < limit {
		limit = len(m.entries)
	}
	return append([]domain.Activity(nil), m.entries[:limit]...), nil
}

func (m *memActivity) ForEntity(ctx context.Context, entity, id string) ([]domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Activity
	for _, e := range m.entries {
		if e.Entity == entity && e.EntityID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

var session = domain.Session{Token: "tok", Email: "admin@bildy.test"}
