package main

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/bildy-admin/internal/config"
	"github.com/phenrril/bildy-admin/internal/domain"
)

const apiBase = "https://api.bildy.test"

func setupAPI(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodPost, apiBase+"/api/user/login",
		httpmock.NewStringResponder(http.StatusOK, `{"token":"tok","user":{"email":"admin@bildy.test"}}`))
	httpmock.RegisterResponder(http.MethodGet, apiBase+"/api/client",
		httpmock.NewStringResponder(http.StatusOK, `[{"_id":"c1","name":"Acme","cif":"B1"},{"_id":"c2","name":"Globex","cif":"B2"}]`))
	httpmock.RegisterResponder(http.MethodGet, apiBase+"/api/project",
		httpmock.NewStringResponder(http.StatusOK, `[{"_id":"p1","name":"Obra","clientId":"c1"}]`))
	httpmock.RegisterResponder(http.MethodGet, apiBase+"/api/deliverynote",
		httpmock.NewStringResponder(http.StatusOK, `[{"_id":"n1","clientId":"c1","projectId":"p1","format":"hours","hours":3,"description":"Pintura","workdate":"2024-03-01"}]`))
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

func TestRunExport_ClientsFiltered(t *testing.T) {
	setupAPI(t)
	out := filepath.Join(t.TempDir(), "c.xlsx")

	err := runExport(context.Background(), config.Config{APIURL: apiBase}, "admin@bildy.test", "x", "clients", exportOpts{query: "glo", out: out})
	require.NoError(t, err)

	rows := readRows(t, out)
	require.Len(t, rows, 2)
	assert.Equal(t, "Globex", rows[1][0])
}

func TestRunExport_DeliveryNotesResolveNames(t *testing.T) {
	setupAPI(t)
	out := filepath.Join(t.TempDir(), "n.xlsx")

	err := runExport(context.Background(), config.Config{APIURL: apiBase}, "admin@bildy.test", "x", "deliverynotes", exportOpts{out: out})
	require.NoError(t, err)

	rows := readRows(t, out)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "Acme")
	assert.Contains(t, rows[1], "Obra")
}

func TestRunExport_BadCredentials(t *testing.T) {
	setupAPI(t)
	httpmock.RegisterResponder(http.MethodPost, apiBase+"/api/user/login",
		httpmock.NewStringResponder(http.StatusUnauthorized, `{"message":"INVALID_PASSWORD"}`))

	err := runExport(context.Background(), config.Config{APIURL: apiBase}, "admin@bildy.test", "bad", "clients", exportOpts{out: filepath.Join(t.TempDir(), "x.xlsx")})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "INVALID_PASSWORD")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestExportCommand_RejectsUnknownList(t *testing.T) {
	root := rootCommand(config.New())
	root.SetArgs([]string{"export", "invoices"})
	assert.Error(t, root.Execute())
}
