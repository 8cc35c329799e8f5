package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/bildy-admin/internal/config"
)

func TestNewApp_WithoutStore(t *testing.T) {
	a, err := NewApp(config.Config{APIURL: "https://api.bildy.test", Env: "production"}, nil)
	require.NoError(t, err)
	assert.False(t, a.Activity.Enabled())
	require.NoError(t, a.Migrate())

	rec := httptest.NewRecorder()
	a.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","activity":false}`, rec.Body.String())
}

func TestNewApp_WithStore(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:app?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	a, err := NewApp(config.Config{Env: "development"}, db)
	require.NoError(t, err)
	require.NoError(t, a.Migrate())
	assert.True(t, a.Activity.Enabled())

	rec := httptest.NewRecorder()
	a.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fclients", rec.Header().Get("Location"))
}

func TestOpenDB_NoDSN(t *testing.T) {
	db, err := OpenDB(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, db)
}
