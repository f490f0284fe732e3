package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Repository provides read-only access to the inventory data set.
// The claims core never mutates inventory records.
type Repository interface {
	FetchItems(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	FetchAllItems(ctx context.Context) ([]Item, error)
	FetchCategories(ctx context.Context) ([]Category, error)
	FetchRooms(ctx context.Context) ([]Room, error)
}
