package models

import (
	"encoding/json"
	"time"

	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for inventory items. The
// claims core reads these records but never writes them.
type InventoryItemModel struct {
	BaseModel
	Name          string           `gorm:"size:255;not null"`
	CategoryID    *uuid.UUID       `gorm:"type:uuid;index"`
	RoomID        *uuid.UUID       `gorm:"type:uuid;index"`
	SerialNumber  string           `gorm:"size:100"`
	PurchasePrice *decimal.Decimal `gorm:"type:decimal(18,2)"`
	PurchaseDate  *time.Time       `gorm:""`
	Photos        string           `gorm:"type:text;not null;default:'[]'"`
	Receipts      string           `gorm:"type:text;not null;default:'[]'"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to the domain item view
func (m *InventoryItemModel) ToDomain() inventory.Item {
	var photos, receipts []string
	// Malformed JSON degrades to no evidence rather than failing the read
	_ = json.Unmarshal([]byte(m.Photos), &photos)
	_ = json.Unmarshal([]byte(m.Receipts), &receipts)

	item := inventory.Item{
		ID:            m.ID,
		Name:          m.Name,
		CategoryID:    m.CategoryID,
		RoomID:        m.RoomID,
		SerialNumber:  m.SerialNumber,
		PurchasePrice: m.PurchasePrice,
		PurchaseDate:  m.PurchaseDate,
		Photos:        photos,
		Receipts:      receipts,
	}
	if m.Category != nil {
		item.CategoryName = m.Category.Name
	}
	return item
}

// CategoryModel is the persistence model for item categories
type CategoryModel struct {
	BaseModel
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain category
func (m *CategoryModel) ToDomain() inventory.Category {
	return inventory.Category{ID: m.ID, Name: m.Name}
}

// RoomModel is the persistence model for property rooms
type RoomModel struct {
	BaseModel
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain room
func (m *RoomModel) ToDomain() inventory.Room {
	return inventory.Room{ID: m.ID, Name: m.Name}
}
