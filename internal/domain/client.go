package domain

import (
	"encoding/json"
	"strings"
)

type Address struct {
	Street   string `json:"street"`
	Postal   string `json:"postal"`
	City     string `json:"city"`
	Province string `json:"province"`
}

// Line joins the non-empty address parts with ", ".
func (a Address) Line() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.Postal, a.City, a.Province} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type Client struct {
	ID      string  `json:"_id,omitempty"`
	Name    string  `json:"name"`
	CIF     string  `json:"cif"`
	Address Address `json:"address"`
}

// UnmarshalJSON accepts "id" when the server omits "_id".
func (c *Client) UnmarshalJSON(b []byte) error {
	type plain Client
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*c = Client(aux.plain)
	if c.ID == "" {
		c.ID = aux.AltID
	}
	return nil
}

func (c Client) Key() string   { return c.ID }
func (c Client) Label() string { return c.Name }
