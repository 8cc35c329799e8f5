package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/bildy-admin/internal/domain"
)

func TestClientForm_SubmitComposesStreet(t *testing.T) {
	api := newFakeAPI()
	uc := &ClientUC{Clients: api, Projects: api}

	f := NewClientForm()
	f.Bind(url.Values{
		"name": {"Acme"}, "street": {"Main St"}, "number": {"5"}, "postal": {"28001"},
		"city": {"Madrid"}, "province": {"Madrid"}, "cif": {"B123"},
	})
	require.NoError(t, uc.Save(context.Background(), session, f))

	assert.Equal(t, FormSuccess, f.State)
	assert.Equal(t, 1, api.count("CreateClient"))
	require.Len(t, api.created, 1)
	body, err := json.Marshal(api.created[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Acme","cif":"B123","address":{"street":"Main St, 5","postal":"28001","city":"Madrid","province":"Madrid"}}`, string(body))
	assert.Equal(t, "new-client", f.Saved.ID)
}

func TestClientForm_MissingFieldBlocksRequest(t *testing.T) {
	api := newFakeAPI()
	uc := &ClientUC{Clients: api, Projects: api}

	f := NewClientForm()
	f.Bind(url.Values{"name": {"Acme"}, "street": {"Main St"}})
	err := uc.Save(context.Background(), session, f)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, api.total())
	assert.Equal(t, FormEditing, f.State)
	assert.Equal(t, msgRequiredFields, f.Message)
	assert.True(t, f.Invalidates("number"))
	assert.False(t, f.Invalidates("name"))
}

func TestClientUC_LoadFormDecomposesStreet(t *testing.T) {
	api := newFakeAPI()
	uc := &ClientUC{Clients: api, Projects: api}

	f, err := uc.LoadForm(context.Background(), session, "c1")
	require.NoError(t, err)
	assert.Equal(t, FormEditing, f.State)
	assert.Equal(t, "Main St", f.Street)
	assert.Equal(t, "5", f.Number)
	assert.True(t, f.IsEdit())

	f.Number = "7"
	require.NoError(t, uc.Save(context.Background(), session, f))
	assert.Equal(t, 1, api.count("UpdateClient"))
	assert.Equal(t, "Main St, 7", api.created[0].(domain.Client).Address.Street)
}

func TestClientUC_LoadFormNotFound(t *testing.T) {
	api := newFakeAPI()
	uc := &ClientUC{Clients: api, Projects: api}

	f, err := uc.LoadForm(context.Background(), session, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, FormLoading, f.State)
	assert.Equal(t, "Cliente no encontrado", f.Message)
	assert.False(t, f.Editable())
}

func TestSplitStreet(t *testing.T) {
	tests := []struct{ in, street, number string }{
		{"Main St, 5", "Main St", "5"},
		{"Calle A, bloque 2, 5", "Calle A, bloque 2", "5"},
		{"Sin numero", "Sin numero", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		s, n := SplitStreet(tt.in)
		assert.Equal(t, tt.street, s, tt.in)
		assert.Equal(t, tt.number, n, tt.in)
		if tt.number != "" {
			assert.Equal(t, tt.in, JoinStreet(s, n))
		}
	}
}

func TestClientUC_SubmitFailureKeepsMessageAndRetries(t *testing.T) {
	api := newFakeAPI()
	api.fail["CreateClient"] = &domain.APIError{Op: "create client", Status: http.StatusConflict, Message: "CIF duplicado"}
	uc := &ClientUC{Clients: api, Projects: api}

	f := NewClientForm()
	f.Bind(url.Values{
		"name": {"Acme"}, "street": {"Main St"}, "number": {"5"}, "postal": {"28001"},
		"city": {"Madrid"}, "province": {"Madrid"}, "cif": {"B123"},
	})
	err := uc.Save(context.Background(), session, f)
	require.Error(t, err)
	assert.Equal(t, FormFailed, f.State)
	assert.Equal(t, "CIF duplicado", f.Message)
	assert.True(t, f.Editable())

	delete(api.fail, "CreateClient")
	require.NoError(t, uc.Save(context.Background(), session, f))
	assert.Equal(t, FormSuccess, f.State)
	assert.Empty(t, f.Message)
	assert.Equal(t, 2, api.count("CreateClient"))
}

func TestClientUC_TransportFailureUsesDefaultMessage(t *testing.T) {
	api := newFakeAPI()
	api.fail["CreateClient"] = errors.New("dial tcp: refused")
	uc := &ClientUC{Clients: api, Projects: api}

	f := NewClientForm()
	f.Bind(url.Values{
		"name": {"A"}, "street": {"S"}, "number": {"1"}, "postal": {"1"},
		"city": {"C"}, "province": {"P"}, "cif": {"X"},
	})
	require.Error(t, uc.Save(context.Background(), session, f))
	assert.Equal(t, "No se pudo crear el cliente", f.Message)
}

func TestRequired_OnlyRejectsEmpty(t *testing.T) {
	v := Violations{}
	Required("name", " ", v)
	Required("cif", "", v)
	assert.False(t, v.Has("name"))
	assert.True(t, v.Has("cif"))
}

func TestForm_Transitions(t *testing.T) {
	f := &Form{State: FormLoading}
	assert.Error(t, f.Submit())
	require.NoError(t, f.Ready())
	require.NoError(t, f.Submit())
	assert.Error(t, f.Ready())
	require.NoError(t, f.Fail("boom"))
	assert.Equal(t, "boom", f.Message)
	require.NoError(t, f.Submit())
	require.NoError(t, f.Succeed())
	assert.True(t, f.Done())
	assert.Error(t, f.Submit())
	assert.Equal(t, "success", f.State.String())
}

func TestDeliveryNoteForm_FormatSwitchesRequirement(t *testing.T) {
	api := newFakeAPI()
	uc := &DeliveryNoteUC{Clients: api, Projects: api, Notes: api}

	f := NewDeliveryNoteForm(api.clients, api.projects)
	f.Bind(url.Values{
		"clientId": {"c1"}, "prevClientId": {"c1"}, "projectId": {"p1"},
		"format": {"material"}, "material": {""}, "hours": {""},
		"description": {"Entrega"}, "workdate": {"2024-05-01"},
	})
	err := uc.Save(context.Background(), session, f)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.True(t, f.Invalidates("material"))
	assert.Equal(t, 0, api.total())

	f.SetFormat(domain.FormatHours)
	v := f.Validate()
	assert.False(t, v.Has("material"))
	assert.True(t, v.Has("hours"))

	f.Hours = "8"
	require.NoError(t, uc.Save(context.Background(), session, f))
	require.Len(t, api.created, 1)
	body, err := json.Marshal(api.created[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"clientId":"c1","projectId":"p1","format":"hours","hours":8,"description":"Entrega","workdate":"2024-05-01"}`, string(body))
}

func TestDeliveryNoteForm_HoursOnlyNeedPresence(t *testing.T) {
	f := NewDeliveryNoteForm(nil, nil)
	f.ClientID, f.ProjectID, f.Description, f.WorkDate = "c1", "p1", "d", "2024-01-01"
	f.SetFormat(domain.FormatHours)

	tests := []struct {
		in   string
		want float64
	}{
		{"7.5", 7.5},
		{"8", 8},
		{"0", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		f.Hours = tt.in
		assert.True(t, f.Validate().Empty(), tt.in)
		p := f.Payload()
		require.NotNil(t, p.Hours, tt.in)
		assert.Equal(t, tt.want, *p.Hours, tt.in)
	}

	f.Hours = ""
	assert.Equal(t, "required", f.Validate()["hours"])
}

func TestDeliveryNoteForm_ChangingClientDropsProject(t *testing.T) {
	api := newFakeAPI()
	f := NewDeliveryNoteForm(api.clients, api.projects)
	f.Bind(url.Values{"clientId": {"c2"}, "prevClientId": {"c1"}, "projectId": {"p1"}, "format": {"material"}})
	assert.Equal(t, "c2", f.ClientID)
	assert.Equal(t, "", f.ProjectID)
	assert.Equal(t, []string{"p2"}, keys(f.ProjectChoices()))

	f.Bind(url.Values{"clientId": {"c2"}, "prevClientId": {"c2"}, "projectId": {"p2"}, "format": {"bogus"}})
	assert.Equal(t, "p2", f.ProjectID)
	assert.Equal(t, domain.FormatMaterial, f.Format)
}

func TestProjectUC_NewFormPreselectsClient(t *testing.T) {
	api := newFakeAPI()
	uc := &ProjectUC{Clients: api, Projects: api, Notes: api}

	f, err := uc.NewForm(context.Background(), session, "c1")
	require.NoError(t, err)
	assert.Equal(t, FormEditing, f.State)
	assert.Equal(t, "c1", f.ClientID)
	assert.Equal(t, "Main St, 5", f.Street)
	assert.Equal(t, "Acme", f.ClientName())

	f.Name, f.ProjectCode, f.Code = "Obra", "PRJ-1", "INT-1"
	require.NoError(t, uc.Save(context.Background(), session, f))
	body, err := json.Marshal(api.created[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Obra","projectCode":"PRJ-1","code":"INT-1","email":"","address":{"street":"Main St, 5","postal":"28001","city":"Madrid","province":"Madrid"},"clientId":"c1"}`, string(body))
}

func TestProjectForm_RequiresOwner(t *testing.T) {
	f := NewProjectForm(nil)
	f.Name, f.ProjectCode, f.Code = "Obra", "PRJ-1", "INT-1"
	v := f.Validate()
	assert.True(t, v.Has("clientId"))
	assert.Len(t, v, 1)
}
