package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups items for reporting and insurer exports
type Category struct {
	ID   uuid.UUID
	Name string
}

// Room locates an item within the insured property
type Room struct {
	ID   uuid.UUID
	Name string
}

// Item is a read-only inventory record as consumed by the claims core.
// The inventory bounded context owns the full entity; this view carries
// only the fields claim validation and export care about.
type Item struct {
	ID            uuid.UUID
	Name          string
	CategoryID    *uuid.UUID
	CategoryName  string
	RoomID        *uuid.UUID
	SerialNumber  string
	PurchasePrice *decimal.Decimal
	PurchaseDate  *time.Time
	Photos        []string // file references
	Receipts      []string // file references
}

// HasPhotos reports whether any photo is attached
func (i *Item) HasPhotos() bool {
	return len(i.Photos) > 0
}

// HasReceipts reports whether any receipt is attached
func (i *Item) HasReceipts() bool {
	return len(i.Receipts) > 0
}

// HasSerialNumber reports whether a non-blank serial number is recorded
func (i *Item) HasSerialNumber() bool {
	return strings.TrimSpace(i.SerialNumber) != ""
}

// HasCategory reports whether the item is categorized
func (i *Item) HasCategory() bool {
	return i.CategoryID != nil && i.CategoryName != ""
}

// PriceOrZero returns the purchase price, or zero when it is unrecorded
func (i *Item) PriceOrZero() decimal.Decimal {
	if i.PurchasePrice == nil {
		return decimal.Zero
	}
	return *i.PurchasePrice
}

// TotalValue sums the purchase prices of items; missing prices contribute zero
func TotalValue(items []Item) decimal.Decimal {
	total := decimal.Zero
	for idx := range items {
		total = total.Add(items[idx].PriceOrZero())
	}
	return total
}
