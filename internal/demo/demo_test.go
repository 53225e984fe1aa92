package demo

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-go/aegis/pkg/aegis"
)

func newDemoApp(t *testing.T) *aegis.Application {
	t.Helper()
	cfg := aegis.DefaultConfig()
	cfg.LogLevel = "error"
	app, err := aegis.New(cfg)
	require.NoError(t, err)
	app.UseFilter(&ValidationFilter{}, 10, "validation")
	require.NoError(t, app.RegisterModule(NewAppModule()))
	return app
}

func do(app *aegis.Application, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.GetRouter().ServeHTTP(rec, req)
	return rec
}

func TestDemoHealth(t *testing.T) {
	app := newDemoApp(t)

	rec := do(app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestDemoUsersCRUD(t *testing.T) {
	app := newDemoApp(t)

	rec := do(app, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Grace","email":"grace@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = do(app, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "grace@example.com")

	rec = do(app, httptest.NewRequest(http.MethodGet, "/users/2", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(app, httptest.NewRequest(http.MethodDelete, "/users/2", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(app, httptest.NewRequest(http.MethodGet, "/users/2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDemoCreateUserValidationUsesCustomFilter(t *testing.T) {
	app := newDemoApp(t)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"","email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(app, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "fields")
	assert.Contains(t, rec.Body.String(), "Validation")
}

func TestDemoFilesWildcard(t *testing.T) {
	app := newDemoApp(t)

	rec := do(app, httptest.NewRequest(http.MethodGet, "/files/docs/readme.md", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"path":"docs/readme.md"}`, rec.Body.String())

	rec = do(app, httptest.NewRequest(http.MethodGet, "/files", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code, "wildcard requires at least the segment boundary")
}

func TestDemoAdminGuard(t *testing.T) {
	app := newDemoApp(t)

	rec := do(app, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("X-Role", "admin")
	rec = do(app, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"admin":true`)
}
