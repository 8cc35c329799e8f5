package usecase

import (
	"net/url"
	"strings"

	"github.com/phenrril/bildy-admin/internal/domain"
)

const msgRequiredFields = "Por favor, llena todos los campos obligatorios"

// ClientForm holds the editable client fields. The API stores street and
// number as one "street, number" string; the form keeps them apart.
type ClientForm struct {
	Form
	ID       string
	Name     string
	Street   string
	Number   string
	Postal   string
	City     string
	Province string
	CIF      string

	Saved *domain.Client
}

// NewClientForm starts a create form with empty defaults.
func NewClientForm() *ClientForm {
	return &ClientForm{Form: Form{State: FormEditing}}
}

// SplitStreet separates the trailing number from a composite street.
func SplitStreet(composite string) (street, number string) {
	i := strings.LastIndex(composite, ", ")
	if i < 0 {
		return composite, ""
	}
	return composite[:i], composite[i+2:]
}

func JoinStreet(street, number string) string {
	return street + ", " + number
}

// Seed fills the form from a fetched client.
func (f *ClientForm) Seed(c domain.Client) {
	f.ID = c.ID
	f.Name = c.Name
	f.Street, f.Number = SplitStreet(c.Address.Street)
	f.Postal = c.Address.Postal
	f.City = c.Address.City
	f.Province = c.Address.Province
	f.CIF = c.CIF
}

func (f *ClientForm) Bind(v url.Values) {
	f.Name = v.Get("name")
	f.Street = v.Get("street")
	f.Number = v.Get("number")
	f.Postal = v.Get("postal")
	f.City = v.Get("city")
	f.Province = v.Get("province")
	f.CIF = v.Get("cif")
}

func (f *ClientForm) Validate() Violations {
	v := Violations{}
	Required("name", f.Name, v)
	Required("street", f.Street, v)
	Required("number", f.Number, v)
	Required("postal", f.Postal, v)
	Required("city", f.City, v)
	Required("province", f.Province, v)
	Required("cif", f.CIF, v)
	return v
}

// Payload is the body the API expects for create and update.
func (f *ClientForm) Payload() domain.Client {
	return domain.Client{
		Name: f.Name,
		CIF:  f.CIF,
		Address: domain.Address{
			Street:   JoinStreet(f.Street, f.Number),
			Postal:   f.Postal,
			City:     f.City,
			Province: f.Province,
		},
	}
}

func (f *ClientForm) IsEdit() bool { return f.ID != "" }
