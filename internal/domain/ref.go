package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is a foreign reference as the API sends it: either a bare id or the
// referenced document embedded as an object. Name caches the embedded label
// when the server populated one.
type Ref struct {
	ID   string
	Name string
}

func RefTo(id string) Ref { return Ref{ID: id} }

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Ref{}
		return nil
	}
	switch b[0] {
	case '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	case '{':
		var obj struct {
			ID    string `json:"_id"`
			AltID string `json:"id"`
			Name  string `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if obj.ID == "" {
			obj.ID = obj.AltID
		}
		*r = Ref{ID: obj.ID, Name: obj.Name}
		return nil
	}
	return fmt.Errorf("ref: unexpected json %q", string(b))
}
