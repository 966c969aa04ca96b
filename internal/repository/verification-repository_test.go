package repository

import (
	"context"
	"testing"

	"github.com/muaishaq001/nacos-hub/config"
	"github.com/muaishaq001/nacos-hub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenDatabase(config.DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestVerificationRepository_MigrateSeedsOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db, config.DriverSQLite, zap.NewNop()))
	require.NoError(t, Migrate(ctx, db, config.DriverSQLite, zap.NewNop()))

	repo := NewVerificationRepository(db, zap.NewNop())
	records, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "FCP/CSC/22/1001", records[0].MatricNumber)

	created, err := repo.Seed(ctx, domain.SeedVerificationRecords())
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestVerificationRepository_FindByMatric(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, config.DriverSQLite, zap.NewNop()))
	repo := NewVerificationRepository(db, zap.NewNop())

	rec, err := repo.FindByMatric(ctx, "FCP/IFT/22/0089")
	require.NoError(t, err)
	assert.Equal(t, "Aisha Yusuf", rec.Name)
	assert.Equal(t, domain.MembershipInactive, rec.Status)
	assert.False(t, rec.IsActive())

	_, err = repo.FindByMatric(ctx, "FCP/XXX/00/0000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStaticVerificationStore(t *testing.T) {
	store := NewStaticVerificationStore(domain.SeedVerificationRecords())
	assert.Equal(t, 4, store.Len())

	rec, err := store.FindByMatric(context.Background(), "FCP/CSC/22/1001")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationRecord{
		MatricNumber: "FCP/CSC/22/1001",
		Name:         "Muhammed Ishaq",
		Department:   "Computer Science",
		Level:        "300 Level",
		Status:       domain.MembershipActive,
	}, *rec)

	// returned records are copies
	rec.Name = "changed"
	again, err := store.FindByMatric(context.Background(), "FCP/CSC/22/1001")
	require.NoError(t, err)
	assert.Equal(t, "Muhammed Ishaq", again.Name)

	_, err = store.FindByMatric(context.Background(), "fcp/csc/22/1001")
	assert.ErrorIs(t, err, ErrNotFound, "store lookups are exact; callers normalise")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.FindByMatric(ctx, "FCP/CSC/22/1001")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewVerificationStore_Memory(t *testing.T) {
	store, err := NewVerificationStore(context.Background(), config.Config{DatabaseDriver: config.DriverMemory}, zap.NewNop())
	require.NoError(t, err)
	_, ok := store.(*StaticVerificationStore)
	assert.True(t, ok)
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	_, err := OpenDatabase("mysql", "dsn")
	assert.Error(t, err)
}
