package rendering

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/claimdesk/backend/internal/domain/inventory"
)

// spreadsheetHeader is the column layout carriers ingesting tabular claim
// data expect. Column order is part of the format; do not reorder.
var spreadsheetHeader = []string{
	"Item Name", "Category", "Room", "Serial Number",
	"Purchase Date", "Purchase Price", "Photo Count", "Receipt Count",
}

// buildSpreadsheet produces the detailed item spreadsheet as CSV bytes
// with a trailing total row
func buildSpreadsheet(items []inventory.Item, categories []inventory.Category, rooms []inventory.Room) ([]byte, error) {
	roomNames := make(map[string]string, len(rooms))
	for _, room := range rooms {
		roomNames[room.ID.String()] = room.Name
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(spreadsheetHeader); err != nil {
		return nil, fmt.Errorf("write spreadsheet header: %w", err)
	}

	for i := range items {
		item := &items[i]
		row := []string{
			item.Name,
			item.CategoryName,
			"",
			item.SerialNumber,
			"",
			"",
			strconv.Itoa(len(item.Photos)),
			strconv.Itoa(len(item.Receipts)),
		}
		if item.RoomID != nil {
			row[2] = roomNames[item.RoomID.String()]
		}
		if item.PurchaseDate != nil {
			row[4] = item.PurchaseDate.Format("2006-01-02")
		}
		if item.PurchasePrice != nil {
			row[5] = item.PurchasePrice.StringFixed(2)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write spreadsheet row: %w", err)
		}
	}

	total := []string{"TOTAL", "", "", "", "", inventory.TotalValue(items).StringFixed(2),
		"", ""}
	if err := w.Write(total); err != nil {
		return nil, fmt.Errorf("write spreadsheet total: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
