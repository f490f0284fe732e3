package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/claimdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.CategoryModel{},
		&models.RoomModel{},
		&models.InventoryItemModel{},
	)
	require.NoError(t, err)

	return db
}

func seedItem(t *testing.T, db *gorm.DB, name string, categoryID *uuid.UUID) uuid.UUID {
	price := decimal.NewFromInt(500)
	purchased := time.Now().AddDate(-1, 0, 0)
	model := models.InventoryItemModel{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:          name,
		CategoryID:    categoryID,
		SerialNumber:  "SN-" + name,
		PurchasePrice: &price,
		PurchaseDate:  &purchased,
		Photos:        `["photos/front.jpg"]`,
		Receipts:      `[]`,
	}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

func TestGormInventoryRepository_FetchItems(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormInventoryRepository(db)

	category := models.CategoryModel{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:      "Electronics",
	}
	require.NoError(t, db.Create(&category).Error)

	tvID := seedItem(t, db, "Television", &category.ID)
	seedItem(t, db, "Sofa", nil)

	items, err := repo.FetchItems(context.Background(), []uuid.UUID{tvID})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Television", item.Name)
	assert.Equal(t, "Electronics", item.CategoryName)
	assert.True(t, item.HasPhotos())
	assert.False(t, item.HasReceipts())
	assert.True(t, item.HasSerialNumber())
	assert.True(t, decimal.NewFromInt(500).Equal(item.PriceOrZero()))
}

func TestGormInventoryRepository_FetchItems_MissingIDsOmitted(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormInventoryRepository(db)

	tvID := seedItem(t, db, "Television", nil)

	items, err := repo.FetchItems(context.Background(), []uuid.UUID{tvID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGormInventoryRepository_FetchItems_EmptyInput(t *testing.T) {
	repo := NewGormInventoryRepository(setupInventoryTestDB(t))

	items, err := repo.FetchItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGormInventoryRepository_FetchAllItemsOrdered(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormInventoryRepository(db)

	seedItem(t, db, "Washer", nil)
	seedItem(t, db, "Armchair", nil)

	items, err := repo.FetchAllItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Armchair", items[0].Name)
	assert.Equal(t, "Washer", items[1].Name)
}

func TestGormInventoryRepository_FetchCategoriesAndRooms(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormInventoryRepository(db)

	for _, name := range []string{"Furniture", "Electronics"} {
		require.NoError(t, db.Create(&models.CategoryModel{
			BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
			Name:      name,
		}).Error)
	}
	require.NoError(t, db.Create(&models.RoomModel{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:      "Living Room",
	}).Error)

	categories, err := repo.FetchCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Electronics", categories[0].Name)

	rooms, err := repo.FetchRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Living Room", rooms[0].Name)
}
