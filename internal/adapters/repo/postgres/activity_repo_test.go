package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/bildy-admin/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestActivityRepo_RecordAndRecent(t *testing.T) {
	repo := NewActivityRepo(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, label := range []string{"Acme", "Globex", "Initech"} {
		require.NoError(t, repo.Record(ctx, &domain.Activity{
			Actor:     "admin@bildy.test",
			Action:    domain.ActionCreate,
			Entity:    "client",
			EntityID:  label,
			Label:     label,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Initech", got[0].Label)
	assert.Equal(t, "Globex", got[1].Label)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestActivityRepo_FillsIDAndTime(t *testing.T) {
	repo := NewActivityRepo(newTestDB(t))
	a := &domain.Activity{Action: domain.ActionDelete, Entity: "deliverynote", EntityID: "n1"}
	require.NoError(t, repo.Record(context.Background(), a))
	assert.NotEmpty(t, a.ID.String())
	assert.False(t, a.CreatedAt.IsZero())

	assert.Error(t, repo.Record(context.Background(), nil))
}

func TestActivityRepo_ForEntity(t *testing.T) {
	repo := NewActivityRepo(newTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Record(ctx, &domain.Activity{Action: domain.ActionCreate, Entity: "project", EntityID: "p1"}))
	require.NoError(t, repo.Record(ctx, &domain.Activity{Action: domain.ActionUpdate, Entity: "project", EntityID: "p1"}))
	require.NoError(t, repo.Record(ctx, &domain.Activity{Action: domain.ActionCreate, Entity: "project", EntityID: "p2"}))

	got, err := repo.ForEntity(ctx, "project", "p1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
