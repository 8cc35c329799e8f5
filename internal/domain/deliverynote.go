package domain

import (
	"encoding/json"
	"strconv"
)

type Format string

const (
	FormatMaterial Format = "material"
	FormatHours    Format = "hours"
)

func (f Format) Valid() bool { return f == FormatMaterial || f == FormatHours }

// Label is the display name used in lists and exports.
func (f Format) Label() string {
	switch f {
	case FormatMaterial:
		return "Material"
	case FormatHours:
		return "Horas"
	}
	return string(f)
}

// DeliveryNote is an albarán: a material- or hours-based work receipt.
type DeliveryNote struct {
	ID          string   `json:"_id,omitempty"`
	ClientID    Ref      `json:"clientId"`
	ProjectID   Ref      `json:"projectId"`
	Format      Format   `json:"format"`
	Material    string   `json:"material,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	Description string   `json:"description"`
	WorkDate    string   `json:"workdate"`
}

func (n *DeliveryNote) UnmarshalJSON(b []byte) error {
	type plain DeliveryNote
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*n = DeliveryNote(aux.plain)
	if n.ID == "" {
		n.ID = aux.AltID
	}
	return nil
}

func (n DeliveryNote) Key() string { return n.ID }

// Quantity renders the format-specific amount for list and export views.
func (n DeliveryNote) Quantity() string {
	switch n.Format {
	case FormatMaterial:
		return n.Material
	case FormatHours:
		if n.Hours == nil {
			return ""
		}
		return strconv.FormatFloat(*n.Hours, 'f', -1, 64) + " h"
	}
	return ""
}

// PDFName is the download name of the server-rendered note.
func PDFName(id string) string { return "albaran_" + id + ".pdf" }
