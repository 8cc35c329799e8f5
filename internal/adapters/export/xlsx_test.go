package export

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/bildy-admin/internal/domain"
	"github.com/phenrril/bildy-admin/internal/usecase"
)

func readRows(t *testing.T, b []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestClients(t *testing.T) {
	clients := []domain.Client{
		{ID: "c1", Name: "Acme", CIF: "B123", Address: domain.Address{Street: "Main St, 5", Postal: "28001", City: "Madrid", Province: "Madrid"}},
		{ID: "c2", Name: "Globex"},
	}
	b, err := Bytes(func(w io.Writer) error { return Clients(w, clients) })
	require.NoError(t, err)

	rows := readRows(t, b, sheetClients)
	require.Len(t, rows, 3)
	assert.Equal(t, "Nombre", rows[0][0])
	assert.Equal(t, []string{"Acme", "B123", "Main St, 5", "28001", "Madrid", "Madrid"}, rows[1])
	assert.Equal(t, "Globex", rows[2][0])
}

func TestDeliveryNotes_UsesFilteredRowsAndResolvedNames(t *testing.T) {
	hours := 8.0
	clients := []domain.Client{{ID: "c1", Name: "Acme"}}
	projects := []domain.Project{{ID: "p1", Name: "Reforma"}}
	notes := []domain.DeliveryNote{
		{ID: "n1", ClientID: domain.RefTo("c1"), ProjectID: domain.RefTo("p1"), Format: domain.FormatHours, Hours: &hours, Description: "Montaje", WorkDate: "2024-05-01"},
		{ID: "n2", ClientID: domain.RefTo("zz"), ProjectID: domain.RefTo("p1"), Format: domain.FormatMaterial, Material: "Cemento", Description: "Entrega", WorkDate: "2024-05-02"},
	}
	page := &usecase.DeliveryNotesPage{
		View:     usecase.NewListView(notes, usecase.DeliveryNoteFields(clients, projects)...),
		Clients:  clients,
		Projects: projects,
	}
	page.View.SetQuery("montaje")

	b, err := Bytes(func(w io.Writer) error { return DeliveryNotes(w, page) })
	require.NoError(t, err)

	rows := readRows(t, b, sheetNotes)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-05-01", "Acme", "Reforma", "Horas", "8 h", "Montaje"}, rows[1])

	page.View.SetQuery("")
	b, err = Bytes(func(w io.Writer) error { return DeliveryNotes(w, page) })
	require.NoError(t, err)
	rows = readRows(t, b, sheetNotes)
	require.Len(t, rows, 3)
	assert.Equal(t, usecase.UnknownClient, rows[2][1])
	assert.Equal(t, "Cemento", rows[2][4])
}
