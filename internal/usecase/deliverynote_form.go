package usecase

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/phenrril/bildy-admin/internal/domain"
)

const msgNoteRequired = "Completa todos los campos obligatorios!"

type DeliveryNoteForm struct {
	Form
	ClientID    string
	ProjectID   string
	Format      domain.Format
	Material    string
	Hours       string
	Description string
	WorkDate    string

	Clients  []domain.Client
	Projects []domain.Project
	Saved    *domain.DeliveryNote
}

func NewDeliveryNoteForm(clients []domain.Client, projects []domain.Project) *DeliveryNoteForm {
	return &DeliveryNoteForm{
		Form:     Form{State: FormEditing},
		Format:   domain.FormatMaterial,
		Hours:    "0",
		Clients:  clients,
		Projects: projects,
	}
}

// SetClient changes the owner; the chosen project belonged to the old one.
func (f *DeliveryNoteForm) SetClient(id string) {
	if id != f.ClientID {
		f.ProjectID = ""
	}
	f.ClientID = id
}

// SetFormat switches which of material or hours is required. Unknown
// values are ignored.
func (f *DeliveryNoteForm) SetFormat(format domain.Format) {
	if format.Valid() {
		f.Format = format
	}
}

// ProjectChoices are the projects of the chosen client.
func (f *DeliveryNoteForm) ProjectChoices() []domain.Project {
	return ProjectsForClient(f.ClientID, f.Projects)
}

func (f *DeliveryNoteForm) IsMaterial() bool { return f.Format == domain.FormatMaterial }
func (f *DeliveryNoteForm) IsHours() bool    { return f.Format == domain.FormatHours }

// Bind applies posted values. prevClientId is the client the page was
// rendered with, so a changed selection drops the stale project.
func (f *DeliveryNoteForm) Bind(v url.Values) {
	f.ClientID = v.Get("prevClientId")
	f.ProjectID = v.Get("projectId")
	f.SetClient(v.Get("clientId"))
	f.SetFormat(domain.Format(v.Get("format")))
	f.Material = v.Get("material")
	if h, ok := v["hours"]; ok && len(h) > 0 {
		f.Hours = h[0]
	}
	f.Description = v.Get("description")
	f.WorkDate = v.Get("workdate")
}

func (f *DeliveryNoteForm) Validate() Violations {
	v := Violations{}
	Required("clientId", f.ClientID, v)
	Required("projectId", f.ProjectID, v)
	Required("format", string(f.Format), v)
	Required("description", f.Description, v)
	Required("workdate", f.WorkDate, v)
	switch f.Format {
	case domain.FormatMaterial:
		Required("material", f.Material, v)
	case domain.FormatHours:
		Required("hours", f.Hours, v)
	}
	return v
}

// hours is the numeric amount sent to the API. Text that does not parse
// counts as zero.
func (f *DeliveryNoteForm) hours() float64 {
	h, err := strconv.ParseFloat(strings.TrimSpace(f.Hours), 64)
	if err != nil {
		return 0
	}
	return h
}

// Payload carries only the branch matching the format.
func (f *DeliveryNoteForm) Payload() domain.DeliveryNote {
	n := domain.DeliveryNote{
		ClientID:    domain.RefTo(f.ClientID),
		ProjectID:   domain.RefTo(f.ProjectID),
		Format:      f.Format,
		Description: f.Description,
		WorkDate:    f.WorkDate,
	}
	switch f.Format {
	case domain.FormatMaterial:
		n.Material = f.Material
	case domain.FormatHours:
		h := f.hours()
		n.Hours = &h
	}
	return n
}
