package domain

import "context"

type AuthAPI interface {
	Login(ctx context.Context, c Credentials) (Session, error)
}

type ClientAPI interface {
	ListClients(ctx context.Context, s Session) ([]Client, error)
	GetClient(ctx context.Context, s Session, id string) (*Client, error)
	CreateClient(ctx context.Context, s Session, c Client) (*Client, error)
	UpdateClient(ctx context.Context, s Session, id string, c Client) (*Client, error)
	DeleteClient(ctx context.Context, s Session, id string) error
}

type ProjectAPI interface {
	ListProjects(ctx context.Context, s Session) ([]Project, error)
	GetProject(ctx context.Context, s Session, id string) (*Project, error)
	CreateProject(ctx context.Context, s Session, p Project) (*Project, error)
	UpdateProject(ctx context.Context, s Session, id string, p Project) (*Project, error)
	DeleteProject(ctx context.Context, s Session, id string) error
}

type DeliveryNoteAPI interface {
	ListDeliveryNotes(ctx context.Context, s Session) ([]DeliveryNote, error)
	CreateDeliveryNote(ctx context.Context, s Session, n DeliveryNote) (*DeliveryNote, error)
	DeleteDeliveryNote(ctx context.Context, s Session, id string) error
	DeliveryNotePDF(ctx context.Context, s Session, id string) ([]byte, error)
}

// API is the whole remote surface the pages need.
type API interface {
	AuthAPI
	ClientAPI
	ProjectAPI
	DeliveryNoteAPI
}

type ActivityRepo interface {
	Record(ctx context.Context, a *Activity) error
	Recent(ctx context.Context, limit int) ([]Activity, error)
	ForEntity(ctx context.Context, entity, id string) ([]Activity, error)
}
