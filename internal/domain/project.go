package domain

import "encoding/json"

type Project struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name"`
	ProjectCode string  `json:"projectCode"`
	Code        string  `json:"code"`
	Email       string  `json:"email"`
	Address     Address `json:"address"`
	ClientID    Ref     `json:"clientId"`
}

// UnmarshalJSON accepts "id" for "_id" and "projectAddress" for "address";
// the API has used both spellings.
func (p *Project) UnmarshalJSON(b []byte) error {
	type plain Project
	var aux struct {
		plain
		AltID          string   `json:"id"`
		ProjectAddress *Address `json:"projectAddress"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Project(aux.plain)
	if p.ID == "" {
		p.ID = aux.AltID
	}
	if p.Address == (Address{}) && aux.ProjectAddress != nil {
		p.Address = *aux.ProjectAddress
	}
	return nil
}

func (p Project) Key() string   { return p.ID }
func (p Project) Label() string { return p.Name }
