package claims

import (
	"fmt"
	"time"

	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/claimdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClaimSubmission is the aggregate root for an insurance claim built from a
// curated subset of the personal inventory. It is created by the export
// coordinator, mutated by the tracking service (status, dates) and the
// correspondence ledger (append-only history), and deleted only by explicit
// user action.
type ClaimSubmission struct {
	shared.BaseAggregateRoot

	// Claim details
	ClaimNumber  string
	PolicyNumber string
	Insurer      InsurerFormat
	ClaimType    ClaimType
	IncidentDate *time.Time

	// Submission details
	Method             SubmissionMethod
	SubmissionDate     *time.Time
	Status             ClaimStatus
	ConfirmationNumber string

	// Item linkage. TotalItemCount always equals len(ItemIDs) at creation
	// and both are immutable afterwards.
	ItemIDs           []uuid.UUID
	TotalItemCount    int
	TotalClaimedValue decimal.Decimal

	// Export artifact metadata
	ArtifactRef  string
	ExportFormat string
	ArtifactSize int64

	// Communication
	Correspondence []CorrespondenceRecord
	FollowUpDate   *time.Time
	Notes          string
}

// NewClaimSubmission constructs a claim from the selected items and
// configuration. Item linkage and the claimed total are computed here once;
// missing purchase prices contribute zero to the total (the validator flags
// them separately).
func NewClaimSubmission(
	insurer InsurerFormat,
	claimType ClaimType,
	method SubmissionMethod,
	items []inventory.Item,
) (*ClaimSubmission, error) {
	if !insurer.IsValid() {
		return nil, shared.NewDomainError("INVALID_INSURER", "Unknown insurer format")
	}
	if !claimType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CLAIM_TYPE", "Unknown claim type")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown submission method")
	}
	if !insurer.AllowsMethod(method) {
		return nil, shared.NewDomainError("METHOD_NOT_ALLOWED",
			fmt.Sprintf("%s does not accept submission via %s", insurer.DisplayName(), method))
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i := range items {
		itemIDs[i] = items[i].ID
	}

	claim := &ClaimSubmission{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Insurer:           insurer,
		ClaimType:         claimType,
		Method:            method,
		Status:            StatusDraft,
		ItemIDs:           itemIDs,
		TotalItemCount:    len(itemIDs),
		TotalClaimedValue: inventory.TotalValue(items),
		ExportFormat:      insurer.FileExtension(),
		Correspondence:    make([]CorrespondenceRecord, 0),
	}

	claim.AddDomainEvent(NewClaimCreatedEvent(claim))

	return claim, nil
}

// SetPolicyNumber records the policy number
func (c *ClaimSubmission) SetPolicyNumber(policyNumber string) {
	c.PolicyNumber = policyNumber
	c.Touch()
}

// SetClaimNumber records the insurer-assigned claim number
func (c *ClaimSubmission) SetClaimNumber(claimNumber string) {
	c.ClaimNumber = claimNumber
	c.Touch()
}

// SetIncidentDate records when the loss occurred
func (c *ClaimSubmission) SetIncidentDate(date time.Time) {
	c.IncidentDate = &date
	c.Touch()
}

// AttachArtifact records the export artifact produced for this claim
func (c *ClaimSubmission) AttachArtifact(fileRef string, byteSize int64) error {
	if fileRef == "" {
		return ErrFileNotFound
	}
	c.ArtifactRef = fileRef
	c.ArtifactSize = byteSize
	c.Touch()
	c.AddDomainEvent(NewClaimExportedEvent(c))
	return nil
}

// HasArtifact reports whether an export artifact is attached
func (c *ClaimSubmission) HasArtifact() bool {
	return c.ArtifactRef != ""
}

// TransitionTo sets a new status, stamps the claim and appends exactly one
// correspondence record summarizing the change. Transitions are deliberately
// unrestricted between non-identical states: insurers report progress out of
// order (a webhook may jump from SUBMITTED straight to APPROVED) and any
// state may move directly to CLOSED on withdrawal. The ledger, not an edge
// list, is the source of truth for how a claim got where it is.
func (c *ClaimSubmission) TransitionTo(newStatus ClaimStatus, notes string) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown claim status")
	}

	previous := c.Status
	c.Status = newStatus
	now := time.Now()
	c.UpdatedAt = now

	if newStatus == StatusSubmitted && c.SubmissionDate == nil {
		c.SubmissionDate = &now
	}
	if notes != "" {
		c.appendNote(notes)
	}

	content := fmt.Sprintf("Status changed to: %s", newStatus)
	if notes != "" {
		content += "\nNotes: " + notes
	}
	c.appendCorrespondence(NewCorrespondenceRecord(
		CorrespondencePortal,
		DirectionReceived,
		"Claim Status Update",
		content,
	))

	c.AddDomainEvent(NewClaimStatusChangedEvent(c, previous, newStatus))

	return nil
}

// AppendCorrespondence adds a communication record to the claim history.
// The history is append-only; prior entries are never mutated or removed.
func (c *ClaimSubmission) AppendCorrespondence(record CorrespondenceRecord) {
	c.appendCorrespondence(record)
	c.Touch()
}

func (c *ClaimSubmission) appendCorrespondence(record CorrespondenceRecord) {
	c.Correspondence = append(c.Correspondence, record)
}

// SetConfirmationNumber records the insurer's confirmation reference
func (c *ClaimSubmission) SetConfirmationNumber(confirmation string) {
	c.ConfirmationNumber = confirmation
	c.Touch()
}

// SetFollowUpDate schedules the next follow-up action
func (c *ClaimSubmission) SetFollowUpDate(date time.Time) {
	c.FollowUpDate = &date
	c.Touch()
}

// AppendNote adds a dated free-text note
func (c *ClaimSubmission) AppendNote(note string) {
	c.appendNote(note)
	c.Touch()
}

func (c *ClaimSubmission) appendNote(note string) {
	line := fmt.Sprintf("%s: %s", time.Now().Format("2006-01-02"), note)
	if c.Notes == "" {
		c.Notes = line
	} else {
		c.Notes += "\n" + line
	}
}

// IsActive reports whether the claim still needs attention
func (c *ClaimSubmission) IsActive() bool {
	return c.Status.IsActive()
}

// FileName returns the artifact file name used for delivery
func (c *ClaimSubmission) FileName() string {
	short := c.ID.String()[:8]
	return fmt.Sprintf("%s_Claim_%s.%s", c.Insurer, short, c.ExportFormat)
}
