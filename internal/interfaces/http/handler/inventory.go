package handler

import (
	"time"

	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes the read-only inventory views used for claim
// item selection
type InventoryHandler struct {
	BaseHandler
	repo inventory.Repository
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(repo inventory.Repository) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

// RegisterRoutes registers inventory routes on the API group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/inventory")
	{
		group.GET("/items", h.ListItems)
		group.GET("/categories", h.ListCategories)
		group.GET("/rooms", h.ListRooms)
	}
}

// ItemResponse is an inventory item as shown in the selection UI
type ItemResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CategoryID    *string    `json:"category_id,omitempty"`
	CategoryName  string     `json:"category_name,omitempty"`
	RoomID        *string    `json:"room_id,omitempty"`
	SerialNumber  string     `json:"serial_number,omitempty"`
	PurchasePrice *string    `json:"purchase_price,omitempty"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`
	PhotoCount    int        `json:"photo_count"`
	ReceiptCount  int        `json:"receipt_count"`
}

// NamedResponse is a category or room reference
type NamedResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toItemResponse(item *inventory.Item) ItemResponse {
	resp := ItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		CategoryName: item.CategoryName,
		SerialNumber: item.SerialNumber,
		PurchaseDate: item.PurchaseDate,
		PhotoCount:   len(item.Photos),
		ReceiptCount: len(item.Receipts),
	}
	if item.CategoryID != nil {
		s := item.CategoryID.String()
		resp.CategoryID = &s
	}
	if item.RoomID != nil {
		s := item.RoomID.String()
		resp.RoomID = &s
	}
	if item.PurchasePrice != nil {
		s := item.PurchasePrice.StringFixed(2)
		resp.PurchasePrice = &s
	}
	return resp
}

// ListItems returns the complete inventory
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.repo.FetchAllItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = toItemResponse(&items[i])
	}
	h.Success(c, responses)
}

// ListCategories returns all item categories
func (h *InventoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.FetchCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	responses := make([]NamedResponse, len(categories))
	for i, category := range categories {
		responses[i] = NamedResponse{ID: category.ID.String(), Name: category.Name}
	}
	h.Success(c, responses)
}

// ListRooms returns all property rooms
func (h *InventoryHandler) ListRooms(c *gin.Context) {
	rooms, err := h.repo.FetchRooms(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	responses := make([]NamedResponse, len(rooms))
	for i, room := range rooms {
		responses[i] = NamedResponse{ID: room.ID.String(), Name: room.Name}
	}
	h.Success(c, responses)
}
