package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hospinv/hospinv-backend/pkg/db/models"
	"github.com/hospinv/hospinv-backend/pkg/enums"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS inventory_items (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  brand TEXT NOT NULL,
  model TEXT,
  serial TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL,
  assigned_to TEXT,
  location TEXT,
  department TEXT,
  sub_area TEXT,
  registered_at DATE NOT NULL,
  last_maintenance_at DATE,
  image TEXT,
  image_thumbnail TEXT,
  image_delete_url TEXT
);`
	require.NoError(t, conn.Exec(schema).Error)
	t.Cleanup(func() {
		conn.Exec("DROP TABLE inventory_items")
	})
	return conn
}

func seedInventoryItem(t *testing.T, conn *gorm.DB, id string, registered time.Time) {
	t.Helper()
	item := models.InventoryItem{
		ID:           id,
		Type:         "Monitor",
		Brand:        "GE",
		Serial:       "SN-" + id,
		Status:       enums.ItemStatusAvailable,
		RegisteredAt: registered,
	}
	require.NoError(t, conn.Create(&item).Error)
}

func TestListNewestRegistrationFirst(t *testing.T) {
	conn := setupInventoryTestDB(t)
	repo := NewRepository(conn)

	seedInventoryItem(t, conn, "EQ001", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	seedInventoryItem(t, conn, "EQ002", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	seedInventoryItem(t, conn, "EQ003", time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "EQ002", items[0].ID)
	require.Equal(t, "EQ003", items[1].ID)
	require.Equal(t, "EQ001", items[2].ID)
}

func TestFindByIDMiss(t *testing.T) {
	conn := setupInventoryTestDB(t)
	repo := NewRepository(conn)

	_, err := repo.FindByID(context.Background(), "EQ404")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteMissingItem(t *testing.T) {
	conn := setupInventoryTestDB(t)
	repo := NewRepository(conn)

	seedInventoryItem(t, conn, "EQ001", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, repo.Delete(context.Background(), "EQ001"))

	err := repo.Delete(context.Background(), "EQ001")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdatePersistsFullRow(t *testing.T) {
	conn := setupInventoryTestDB(t)
	repo := NewRepository(conn)

	seedInventoryItem(t, conn, "EQ001", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	item, err := repo.FindByID(context.Background(), "EQ001")
	require.NoError(t, err)

	item.Status = enums.ItemStatusDamaged
	dept := "ICU"
	item.Department = &dept
	require.NoError(t, repo.Update(context.Background(), item))

	reloaded, err := repo.FindByID(context.Background(), "EQ001")
	require.NoError(t, err)
	require.Equal(t, enums.ItemStatusDamaged, reloaded.Status)
	require.NotNil(t, reloaded.Department)
	require.Equal(t, "ICU", *reloaded.Department)
}
