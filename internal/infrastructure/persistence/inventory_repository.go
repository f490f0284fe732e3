package persistence

import (
	"context"

	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/claimdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryRepository implements inventory.Repository using GORM.
// It is strictly read-only: the claims core consumes inventory records but
// never writes them.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FetchItems loads the items with the given IDs. Missing IDs are silently
// omitted from the result; the caller decides whether that matters.
func (r *GormInventoryRepository) FetchItems(ctx context.Context, ids []uuid.UUID) ([]inventory.Item, error) {
	if len(ids) == 0 {
		return []inventory.Item{}, nil
	}

	var list []models.InventoryItemModel
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN ?", ids).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(list), nil
}

// FetchAllItems loads the complete inventory, name order
func (r *GormInventoryRepository) FetchAllItems(ctx context.Context) ([]inventory.Item, error) {
	var list []models.InventoryItemModel
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(list), nil
}

// FetchCategories loads all item categories, name order
func (r *GormInventoryRepository) FetchCategories(ctx context.Context) ([]inventory.Category, error) {
	var list []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	result := make([]inventory.Category, len(list))
	for i := range list {
		result[i] = list[i].ToDomain()
	}
	return result, nil
}

// FetchRooms loads all property rooms, name order
func (r *GormInventoryRepository) FetchRooms(ctx context.Context) ([]inventory.Room, error) {
	var list []models.RoomModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	result := make([]inventory.Room, len(list))
	for i := range list {
		result[i] = list[i].ToDomain()
	}
	return result, nil
}

func toDomainItems(list []models.InventoryItemModel) []inventory.Item {
	result := make([]inventory.Item, len(list))
	for i := range list {
		result[i] = list[i].ToDomain()
	}
	return result
}

// Ensure GormInventoryRepository implements Repository
var _ inventory.Repository = (*GormInventoryRepository)(nil)
