package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crane-asset-manager/internal/application"
	apphttp "github.com/example/crane-asset-manager/internal/http"
	"github.com/example/crane-asset-manager/internal/persistence"
	"github.com/example/crane-asset-manager/internal/testfixtures"
)

type serverFixture struct {
	handler         http.Handler
	supervisorToken string
	inspectorToken  string
	locationID      int64
}

func newServerFixture(t *testing.T) serverFixture {
	t.Helper()
	store := testfixtures.NewStore(t)
	ctx := context.Background()

	auth := application.NewAuthService(store.Users(), store.Sessions(), time.Hour)
	services := apphttp.Services{
		Auth:        auth,
		Assets:      application.NewAssetService(store.Assets(), store.Locations()),
		Inspections: application.NewInspectionService(store.Inspections(), store.Assets(), store.Media()),
		Maintenance: application.NewMaintenanceService(store.Maintenance(), store.Assets()),
		Store:       store,
	}
	server := apphttp.NewServer("127.0.0.1:0", services)

	hash, err := application.HashPassword("pass-word-1")
	require.NoError(t, err)

	supervisor, err := store.Users().CreateUser(ctx, persistence.User{
		Username: "supervisor1", Email: "sup@example.com", PasswordHash: hash,
		Role: persistence.RoleSupervisor, FirstName: "Sam", LastName: "Po", IsActive: true,
	})
	require.NoError(t, err)

	_, err = store.Users().CreateUser(ctx, persistence.User{
		Username: "inspector1", Email: "ins@example.com", PasswordHash: hash,
		Role: persistence.RoleInspector, FirstName: "Iris", LastName: "Vega", IsActive: true,
	})
	require.NoError(t, err)

	supSession, _, err := auth.Login(ctx, "supervisor1", "pass-word-1")
	require.NoError(t, err)
	insSession, _, err := auth.Login(ctx, "inspector1", "pass-word-1")
	require.NoError(t, err)

	location, err := store.Locations().CreateLocation(ctx, persistence.Location{
		Name: "Plant A", CreatedBy: supervisor.ID,
	})
	require.NoError(t, err)

	return serverFixture{
		handler:         server.Handler(),
		supervisorToken: supSession.Token,
		inspectorToken:  insSession.Token,
		locationID:      location.ID,
	}
}

func (f serverFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, req)
	return recorder
}

func TestHealthz(t *testing.T) {
	f := newServerFixture(t)

	resp := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestLoginEndpoint(t *testing.T) {
	f := newServerFixture(t)

	resp := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "inspector1",
		"password": "pass-word-1",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "Inspector", body["role"])

	resp = f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "inspector1",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	f := newServerFixture(t)

	resp := f.do(t, http.MethodGet, "/assets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = f.do(t, http.MethodGet, "/assets", "bad-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = f.do(t, http.MethodGet, "/assets", f.inspectorToken, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAssetCreationRequiresSupervisorRole(t *testing.T) {
	f := newServerFixture(t)
	asset := map[string]any{
		"asset_number": "CR-001",
		"asset_name":   "Bay 1 Bridge Crane",
		"asset_type":   "Bridge Crane",
		"location_id":  f.locationID,
	}

	resp := f.do(t, http.MethodPost, "/assets", f.inspectorToken, asset)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = f.do(t, http.MethodPost, "/assets", f.supervisorToken, asset)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created persistence.Asset
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "CR-001", created.AssetNumber)
	assert.Equal(t, persistence.AssetStatusActive, created.Status)

	// Duplicate asset number conflicts.
	resp = f.do(t, http.MethodPost, "/assets", f.supervisorToken, asset)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestInspectionFlowOverHTTP(t *testing.T) {
	f := newServerFixture(t)

	resp := f.do(t, http.MethodPost, "/assets", f.supervisorToken, map[string]any{
		"asset_number": "CR-001",
		"asset_name":   "Bay 1 Bridge Crane",
		"asset_type":   "Bridge Crane",
		"location_id":  f.locationID,
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var asset persistence.Asset
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &asset))

	resp = f.do(t, http.MethodPost, "/inspections", f.inspectorToken, map[string]any{
		"asset_id":            asset.ID,
		"inspection_type":     "Periodic",
		"compliance_standard": "OSHA_1910_179",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var inspection persistence.Inspection
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &inspection))
	assert.Equal(t, persistence.InspectionStatusScheduled, inspection.Status)

	resp = f.do(t, http.MethodPost, fmt.Sprintf("/inspections/%d/complete", inspection.ID), f.inspectorToken, map[string]any{
		"overall_condition": "Good",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = f.do(t, http.MethodGet, "/inspections/999", f.inspectorToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSchemaEndpoints(t *testing.T) {
	f := newServerFixture(t)

	resp := f.do(t, http.MethodGet, "/schema/status", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var status map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &status))
	assert.EqualValues(t, 6, status["current_version"])
	assert.EqualValues(t, 6, status["latest_version"])

	resp = f.do(t, http.MethodGet, "/schema/progress", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var progress map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &progress))
	assert.EqualValues(t, 6, progress["total"])
	assert.EqualValues(t, 6, progress["completed"])
}

func TestLogoutEndpoint(t *testing.T) {
	f := newServerFixture(t)

	resp := f.do(t, http.MethodPost, "/auth/logout", f.inspectorToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = f.do(t, http.MethodGet, "/assets", f.inspectorToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
