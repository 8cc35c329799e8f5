package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/bildy-admin/internal/domain"
	"github.com/phenrril/bildy-admin/internal/usecase"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetClients = "Clientes"
	sheetNotes   = "Albaranes"
)

// Clients writes the given clients, one row each, in list order.
func Clients(w io.Writer, clients []domain.Client) error {
	rows := make([][]any, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []any{c.Name, c.CIF, c.Address.Street, c.Address.Postal, c.Address.City, c.Address.Province})
	}
	return write(w, sheetClients, []string{"Nombre", "CIF", "Dirección", "C.P.", "Ciudad", "Provincia"}, rows)
}

// DeliveryNotes writes the notes with their client and project names joined
// from the page catalog.
func DeliveryNotes(w io.Writer, page *usecase.DeliveryNotesPage) error {
	items := page.View.Items()
	rows := make([][]any, 0, len(items))
	for _, n := range items {
		rows = append(rows, []any{
			n.WorkDate,
			page.ClientName(n.ClientID),
			page.ProjectName(n.ProjectID),
			n.Format.Label(),
			n.Quantity(),
			n.Description,
		})
	}
	return write(w, sheetNotes, []string{"Fecha", "Cliente", "Proyecto", "Tipo", "Cantidad", "Descripción"}, rows)
}

func write(w io.Writer, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("fila %d: %w", i+2, err)
		}
	}
	first, _ := excelize.ColumnNumberToName(1)
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, first, lastCol, 22); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

// Bytes renders a whole workbook in memory so a failed export never sends a
// partial response.
func Bytes(fn func(io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
