package usecase

import (
	"net/url"

	"github.com/phenrril/bildy-admin/internal/domain"
)

type ProjectForm struct {
	Form
	ID          string
	Name        string
	ProjectCode string
	Code        string
	Email       string
	Street      string
	Postal      string
	City        string
	Province    string
	ClientID    string

	// Clients feeds the owner selector.
	Clients []domain.Client
	Saved   *domain.Project
}

func NewProjectForm(clients []domain.Client) *ProjectForm {
	return &ProjectForm{Form: Form{State: FormEditing}, Clients: clients}
}

func (f *ProjectForm) Seed(p domain.Project) {
	f.ID = p.ID
	f.Name = p.Name
	f.ProjectCode = p.ProjectCode
	f.Code = p.Code
	f.Email = p.Email
	f.Street = p.Address.Street
	f.Postal = p.Address.Postal
	f.City = p.Address.City
	f.Province = p.Address.Province
	f.ClientID = p.ClientID.ID
}

// PreselectClient picks the owner and copies its address as the default
// project address. Unknown ids are ignored.
func (f *ProjectForm) PreselectClient(clientID string) bool {
	c, ok := FindByKey(clientID, f.Clients)
	if !ok {
		return false
	}
	f.ClientID = c.ID
	f.Street = c.Address.Street
	f.Postal = c.Address.Postal
	f.City = c.Address.City
	f.Province = c.Address.Province
	return true
}

func (f *ProjectForm) Bind(v url.Values) {
	f.Name = v.Get("name")
	f.ProjectCode = v.Get("projectCode")
	f.Code = v.Get("code")
	f.Email = v.Get("email")
	f.Street = v.Get("street")
	f.Postal = v.Get("postal")
	f.City = v.Get("city")
	f.Province = v.Get("province")
	f.ClientID = v.Get("clientId")
}

func (f *ProjectForm) Validate() Violations {
	v := Violations{}
	Required("name", f.Name, v)
	Required("projectCode", f.ProjectCode, v)
	Required("code", f.Code, v)
	Required("clientId", f.ClientID, v)
	return v
}

func (f *ProjectForm) Payload() domain.Project {
	return domain.Project{
		Name:        f.Name,
		ProjectCode: f.ProjectCode,
		Code:        f.Code,
		Email:       f.Email,
		Address: domain.Address{
			Street:   f.Street,
			Postal:   f.Postal,
			City:     f.City,
			Province: f.Province,
		},
		ClientID: domain.RefTo(f.ClientID),
	}
}

func (f *ProjectForm) IsEdit() bool { return f.ID != "" }

func (f *ProjectForm) ClientName() string {
	return ClientName(domain.RefTo(f.ClientID), f.Clients)
}
