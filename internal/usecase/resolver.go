package usecase

import "github.com/phenrril/bildy-admin/internal/domain"

const (
	UnknownClient  = "Cliente desconocido"
	UnknownProject = "Proyecto desconocido"
)

type Labeled interface {
	Key() string
	Label() string
}

// ResolveLabel turns a reference into a display name using an already
// fetched collection. It scans linearly; lists are small. Any miss yields
// placeholder.
func ResolveLabel[T Labeled](ref domain.Ref, items []T, placeholder string) string {
	if ref.ID == "" {
		return placeholder
	}
	for _, it := range items {
		if it.Key() == ref.ID {
			if l := it.Label(); l != "" {
				return l
			}
			break
		}
	}
	return placeholder
}

func ClientName(ref domain.Ref, clients []domain.Client) string {
	return ResolveLabel(ref, clients, UnknownClient)
}

func ProjectName(ref domain.Ref, projects []domain.Project) string {
	return ResolveLabel(ref, projects, UnknownProject)
}

// FindByKey returns the first item whose key is id.
func FindByKey[T interface{ Key() string }](id string, items []T) (T, bool) {
	for _, it := range items {
		if id != "" && it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// ProjectsForClient narrows project choices to one client.
func ProjectsForClient(clientID string, projects []domain.Project) []domain.Project {
	out := make([]domain.Project, 0)
	if clientID == "" {
		return out
	}
	for _, p := range projects {
		if p.ClientID.ID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// NotesForProject lists the notes filed against a project for its client.
func NotesForProject(projectID, clientID string, notes []domain.DeliveryNote) []domain.DeliveryNote {
	out := make([]domain.DeliveryNote, 0)
	for _, n := range notes {
		if n.ProjectID.ID == projectID && n.ClientID.ID == clientID {
			out = append(out, n)
		}
	}
	return out
}
