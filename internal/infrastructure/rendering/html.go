package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/claimdesk/backend/internal/domain/inventory"
)

// claimFormTemplate is the standard narrative claim form. Carriers that
// accept PDF claims receive this document.
const claimFormTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
  h1 { font-size: 20px; border-bottom: 2px solid #1a3a5c; padding-bottom: 6px; }
  .meta { margin: 12px 0; }
  .meta td { padding: 2px 16px 2px 0; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 12px; }
  table.items th { background: #1a3a5c; color: #fff; text-align: left; padding: 6px; font-size: 11px; }
  table.items td { border-bottom: 1px solid #ccc; padding: 6px; vertical-align: top; }
  td.amount { text-align: right; white-space: nowrap; }
  .total { font-weight: bold; }
  .footer { margin-top: 24px; font-size: 10px; color: #777; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table class="meta">
  <tr><td>Policy Number</td><td>{{.PolicyNumber}}</td></tr>
  <tr><td>Generated</td><td>{{.GeneratedAt}}</td></tr>
  <tr><td>Items Claimed</td><td>{{.ItemCount}}</td></tr>
</table>
<table class="items">
  <tr>
    <th>Item</th><th>Category</th><th>Room</th><th>Serial Number</th>
    <th>Purchase Date</th><th>Evidence</th><th>Value</th>
  </tr>
  {{range .Items}}
  <tr>
    <td>{{.Name}}</td>
    <td>{{.Category}}</td>
    <td>{{.Room}}</td>
    <td>{{.SerialNumber}}</td>
    <td>{{.PurchaseDate}}</td>
    <td>{{.Evidence}}</td>
    <td class="amount">{{.Value}}</td>
  </tr>
  {{end}}
  <tr class="total">
    <td colspan="6">Total Claimed Value</td>
    <td class="amount">{{.TotalValue}}</td>
  </tr>
</table>
<div class="footer">Generated by ClaimDesk. Values reflect recorded purchase prices.</div>
</body>
</html>`

var claimForm = template.Must(template.New("claim_form").Parse(claimFormTemplate))

type claimFormData struct {
	Title        string
	PolicyNumber string
	GeneratedAt  string
	ItemCount    int
	TotalValue   string
	Items        []claimFormRow
}

type claimFormRow struct {
	Name         string
	Category     string
	Room         string
	SerialNumber string
	PurchaseDate string
	Evidence     string
	Value        string
}

// buildClaimFormHTML renders the standard claim form document
func buildClaimFormHTML(items []inventory.Item, rooms []inventory.Room, title, policyNumber string) (string, error) {
	roomNames := make(map[string]string, len(rooms))
	for _, room := range rooms {
		roomNames[room.ID.String()] = room.Name
	}

	data := claimFormData{
		Title:        title,
		PolicyNumber: policyNumber,
		GeneratedAt:  time.Now().Format("January 2, 2006"),
		ItemCount:    len(items),
		TotalValue:   "$" + inventory.TotalValue(items).StringFixed(2),
		Items:        make([]claimFormRow, 0, len(items)),
	}

	for i := range items {
		item := &items[i]
		row := claimFormRow{
			Name:         item.Name,
			Category:     item.CategoryName,
			SerialNumber: item.SerialNumber,
			Evidence:     fmt.Sprintf("%d photos, %d receipts", len(item.Photos), len(item.Receipts)),
		}
		if item.RoomID != nil {
			row.Room = roomNames[item.RoomID.String()]
		}
		if item.PurchaseDate != nil {
			row.PurchaseDate = item.PurchaseDate.Format("2006-01-02")
		}
		if item.PurchasePrice != nil {
			row.Value = "$" + item.PurchasePrice.StringFixed(2)
		} else {
			row.Value = "Not recorded"
		}
		data.Items = append(data.Items, row)
	}

	var buf bytes.Buffer
	if err := claimForm.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute claim form template: %w", err)
	}
	return buf.String(), nil
}
