package export

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
)

// acordDocument is the ACORD-style XML claim document. Carriers consuming
// ACORD feeds care about the itemized schedule; the envelope identifies
// the policy and loss event.
type acordDocument struct {
	XMLName      xml.Name    `xml:"ACORD"`
	Version      string      `xml:"version,attr"`
	Generated    string      `xml:"generatedAt,attr"`
	PolicyNumber string      `xml:"Policy>PolicyNumber"`
	ClaimType    string      `xml:"Claim>LossType"`
	IncidentDate string      `xml:"Claim>LossDate,omitempty"`
	TotalValue   string      `xml:"Claim>TotalClaimedAmount"`
	ItemCount    int         `xml:"Claim>ItemCount"`
	Items        []acordItem `xml:"Schedule>Item"`
}

type acordItem struct {
	Name          string `xml:"Description"`
	Category      string `xml:"Category,omitempty"`
	SerialNumber  string `xml:"SerialNumber,omitempty"`
	PurchasePrice string `xml:"Valuation,omitempty"`
	PurchaseDate  string `xml:"AcquisitionDate,omitempty"`
	PhotoCount    int    `xml:"EvidenceCount"`
}

// XMLStrategy produces structured ACORD XML natively, without the
// rendering backend
type XMLStrategy struct {
	store appclaims.ArtifactStore
}

func NewXMLStrategy(store appclaims.ArtifactStore) *XMLStrategy {
	return &XMLStrategy{store: store}
}

func (s *XMLStrategy) Name() string { return "acord_xml" }

func (s *XMLStrategy) Class() claims.StrategyClass { return claims.ClassXML }

func (s *XMLStrategy) Export(
	ctx context.Context,
	items []inventory.Item,
	_ []inventory.Category,
	_ []inventory.Room,
	claim *claims.ClaimSubmission,
) (*appclaims.ExportResult, error) {
	doc := acordDocument{
		Version:      "2.0",
		Generated:    time.Now().UTC().Format(time.RFC3339),
		PolicyNumber: claim.PolicyNumber,
		ClaimType:    string(claim.ClaimType),
		TotalValue:   claim.TotalClaimedValue.StringFixed(2),
		ItemCount:    len(items),
		Items:        make([]acordItem, 0, len(items)),
	}
	if claim.IncidentDate != nil {
		doc.IncidentDate = claim.IncidentDate.Format("2006-01-02")
	}

	for i := range items {
		item := &items[i]
		entry := acordItem{
			Name:         item.Name,
			Category:     item.CategoryName,
			SerialNumber: item.SerialNumber,
			PhotoCount:   len(item.Photos),
		}
		if item.PurchasePrice != nil {
			entry.PurchasePrice = item.PurchasePrice.StringFixed(2)
		}
		if item.PurchaseDate != nil {
			entry.PurchaseDate = item.PurchaseDate.Format("2006-01-02")
		}
		doc.Items = append(doc.Items, entry)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal ACORD document: %w", err)
	}
	data = append([]byte(xml.Header), data...)

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

var _ Strategy = (*XMLStrategy)(nil)
