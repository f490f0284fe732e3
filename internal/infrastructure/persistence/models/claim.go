package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClaimSubmissionModel is the persistence model for the ClaimSubmission
// aggregate root. Item linkage and the correspondence ledger are stored as
// JSON columns: the ledger is append-only and always loaded whole with the
// claim, so a join table buys nothing.
type ClaimSubmissionModel struct {
	AggregateModel
	ClaimNumber        string          `gorm:"size:100;index"`
	PolicyNumber       string          `gorm:"size:100;not null"`
	Insurer            string          `gorm:"size:50;not null"`
	ClaimType          string          `gorm:"size:50;not null"`
	IncidentDate       *time.Time      `gorm:""`
	Method             string          `gorm:"size:50;not null"`
	SubmissionDate     *time.Time      `gorm:""`
	Status             string          `gorm:"size:50;not null;index"`
	ConfirmationNumber string          `gorm:"size:200"`
	ItemIDs            string          `gorm:"type:text;not null"`
	TotalItemCount     int             `gorm:"not null"`
	TotalClaimedValue  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ArtifactRef        string          `gorm:"size:500"`
	ExportFormat       string          `gorm:"size:20"`
	ArtifactSize       int64           `gorm:""`
	Correspondence     string          `gorm:"type:text;not null;default:'[]'"`
	FollowUpDate       *time.Time      `gorm:"index"`
	Notes              string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClaimSubmissionModel) TableName() string {
	return "claim_submissions"
}

// ToDomain converts the persistence model to a domain ClaimSubmission
func (m *ClaimSubmissionModel) ToDomain() (*claims.ClaimSubmission, error) {
	var itemIDs []uuid.UUID
	if err := json.Unmarshal([]byte(m.ItemIDs), &itemIDs); err != nil {
		return nil, fmt.Errorf("failed to decode item IDs for claim %s: %w", m.ID, err)
	}

	var correspondence []claims.CorrespondenceRecord
	if err := json.Unmarshal([]byte(m.Correspondence), &correspondence); err != nil {
		return nil, fmt.Errorf("failed to decode correspondence for claim %s: %w", m.ID, err)
	}

	claim := &claims.ClaimSubmission{
		ClaimNumber:        m.ClaimNumber,
		PolicyNumber:       m.PolicyNumber,
		Insurer:            claims.InsurerFormat(m.Insurer),
		ClaimType:          claims.ClaimType(m.ClaimType),
		IncidentDate:       m.IncidentDate,
		Method:             claims.SubmissionMethod(m.Method),
		SubmissionDate:     m.SubmissionDate,
		Status:             claims.ClaimStatus(m.Status),
		ConfirmationNumber: m.ConfirmationNumber,
		ItemIDs:            itemIDs,
		TotalItemCount:     m.TotalItemCount,
		TotalClaimedValue:  m.TotalClaimedValue,
		ArtifactRef:        m.ArtifactRef,
		ExportFormat:       m.ExportFormat,
		ArtifactSize:       m.ArtifactSize,
		Correspondence:     correspondence,
		FollowUpDate:       m.FollowUpDate,
		Notes:              m.Notes,
	}
	m.PopulateAggregateRoot(&claim.BaseAggregateRoot)
	return claim, nil
}

// FromDomain populates the persistence model from a domain ClaimSubmission
func (m *ClaimSubmissionModel) FromDomain(c *claims.ClaimSubmission) error {
	itemIDs, err := json.Marshal(c.ItemIDs)
	if err != nil {
		return fmt.Errorf("failed to encode item IDs: %w", err)
	}
	correspondence, err := json.Marshal(c.Correspondence)
	if err != nil {
		return fmt.Errorf("failed to encode correspondence: %w", err)
	}

	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.ClaimNumber = c.ClaimNumber
	m.PolicyNumber = c.PolicyNumber
	m.Insurer = string(c.Insurer)
	m.ClaimType = string(c.ClaimType)
	m.IncidentDate = c.IncidentDate
	m.Method = string(c.Method)
	m.SubmissionDate = c.SubmissionDate
	m.Status = string(c.Status)
	m.ConfirmationNumber = c.ConfirmationNumber
	m.ItemIDs = string(itemIDs)
	m.TotalItemCount = c.TotalItemCount
	m.TotalClaimedValue = c.TotalClaimedValue
	m.ArtifactRef = c.ArtifactRef
	m.ExportFormat = c.ExportFormat
	m.ArtifactSize = c.ArtifactSize
	m.Correspondence = string(correspondence)
	m.FollowUpDate = c.FollowUpDate
	m.Notes = c.Notes
	return nil
}
