package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
)

// jsonDocument is the machine-readable claim payload for insurers that
// ingest claims through their own APIs
type jsonDocument struct {
	GeneratedAt  string     `json:"generated_at"`
	PolicyNumber string     `json:"policy_number"`
	ClaimType    string     `json:"claim_type"`
	IncidentDate string     `json:"incident_date,omitempty"`
	ItemCount    int        `json:"item_count"`
	TotalValue   string     `json:"total_claimed_value"`
	Items        []jsonItem `json:"items"`
}

type jsonItem struct {
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	Room          string `json:"room,omitempty"`
	SerialNumber  string `json:"serial_number,omitempty"`
	PurchasePrice string `json:"purchase_price,omitempty"`
	PurchaseDate  string `json:"purchase_date,omitempty"`
	PhotoCount    int    `json:"photo_count"`
	ReceiptCount  int    `json:"receipt_count"`
}

// JSONStrategy produces the JSON claim payload natively
type JSONStrategy struct {
	store appclaims.ArtifactStore
}

func NewJSONStrategy(store appclaims.ArtifactStore) *JSONStrategy {
	return &JSONStrategy{store: store}
}

func (s *JSONStrategy) Name() string { return "json_payload" }

func (s *JSONStrategy) Class() claims.StrategyClass { return claims.ClassJSON }

func (s *JSONStrategy) Export(
	ctx context.Context,
	items []inventory.Item,
	_ []inventory.Category,
	rooms []inventory.Room,
	claim *claims.ClaimSubmission,
) (*appclaims.ExportResult, error) {
	roomNames := make(map[string]string, len(rooms))
	for _, room := range rooms {
		roomNames[room.ID.String()] = room.Name
	}

	doc := jsonDocument{
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		PolicyNumber: claim.PolicyNumber,
		ClaimType:    string(claim.ClaimType),
		ItemCount:    len(items),
		TotalValue:   claim.TotalClaimedValue.StringFixed(2),
		Items:        make([]jsonItem, 0, len(items)),
	}
	if claim.IncidentDate != nil {
		doc.IncidentDate = claim.IncidentDate.Format("2006-01-02")
	}

	for i := range items {
		item := &items[i]
		entry := jsonItem{
			Name:         item.Name,
			Category:     item.CategoryName,
			SerialNumber: item.SerialNumber,
			PhotoCount:   len(item.Photos),
			ReceiptCount: len(item.Receipts),
		}
		if item.RoomID != nil {
			entry.Room = roomNames[item.RoomID.String()]
		}
		if item.PurchasePrice != nil {
			entry.PurchasePrice = item.PurchasePrice.StringFixed(2)
		}
		if item.PurchaseDate != nil {
			entry.PurchaseDate = item.PurchaseDate.Format("2006-01-02")
		}
		doc.Items = append(doc.Items, entry)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal claim payload: %w", err)
	}

	fileRef, err := s.store.Write(ctx, claim.FileName(), data)
	if err != nil {
		return nil, err
	}

	return &appclaims.ExportResult{
		FileRef:    fileRef,
		ItemCount:  len(items),
		TotalValue: claim.TotalClaimedValue,
		ByteSize:   int64(len(data)),
	}, nil
}

var _ Strategy = (*JSONStrategy)(nil)
