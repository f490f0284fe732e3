package claims

import (
	"github.com/claimdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeClaimSubmission = "ClaimSubmission"

// Event type constants
const (
	EventTypeClaimCreated       = "ClaimCreated"
	EventTypeClaimExported      = "ClaimExported"
	EventTypeClaimStatusChanged = "ClaimStatusChanged"
)

// ClaimCreatedEvent is raised when a claim submission is first built
type ClaimCreatedEvent struct {
	shared.BaseDomainEvent
	ClaimID           uuid.UUID        `json:"claim_id"`
	Insurer           InsurerFormat    `json:"insurer"`
	ClaimType         ClaimType        `json:"claim_type"`
	Method            SubmissionMethod `json:"method"`
	TotalItemCount    int              `json:"total_item_count"`
	TotalClaimedValue decimal.Decimal  `json:"total_claimed_value"`
}

// NewClaimCreatedEvent creates a new ClaimCreatedEvent
func NewClaimCreatedEvent(claim *ClaimSubmission) *ClaimCreatedEvent {
	return &ClaimCreatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeClaimCreated, AggregateTypeClaimSubmission, claim.ID),
		ClaimID:           claim.ID,
		Insurer:           claim.Insurer,
		ClaimType:         claim.ClaimType,
		Method:            claim.Method,
		TotalItemCount:    claim.TotalItemCount,
		TotalClaimedValue: claim.TotalClaimedValue,
	}
}

// EventType returns the event type name
func (e *ClaimCreatedEvent) EventType() string {
	return EventTypeClaimCreated
}

// ClaimExportedEvent is raised when the export artifact has been produced
type ClaimExportedEvent struct {
	shared.BaseDomainEvent
	ClaimID      uuid.UUID `json:"claim_id"`
	ArtifactRef  string    `json:"artifact_ref"`
	ExportFormat string    `json:"export_format"`
	ArtifactSize int64     `json:"artifact_size"`
}

// NewClaimExportedEvent creates a new ClaimExportedEvent
func NewClaimExportedEvent(claim *ClaimSubmission) *ClaimExportedEvent {
	return &ClaimExportedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClaimExported, AggregateTypeClaimSubmission, claim.ID),
		ClaimID:         claim.ID,
		ArtifactRef:     claim.ArtifactRef,
		ExportFormat:    claim.ExportFormat,
		ArtifactSize:    claim.ArtifactSize,
	}
}

// EventType returns the event type name
func (e *ClaimExportedEvent) EventType() string {
	return EventTypeClaimExported
}

// ClaimStatusChangedEvent is raised on every status transition
type ClaimStatusChangedEvent struct {
	shared.BaseDomainEvent
	ClaimID        uuid.UUID   `json:"claim_id"`
	PreviousStatus ClaimStatus `json:"previous_status"`
	NewStatus      ClaimStatus `json:"new_status"`
}

// NewClaimStatusChangedEvent creates a new ClaimStatusChangedEvent
func NewClaimStatusChangedEvent(claim *ClaimSubmission, previous, next ClaimStatus) *ClaimStatusChangedEvent {
	return &ClaimStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClaimStatusChanged, AggregateTypeClaimSubmission, claim.ID),
		ClaimID:         claim.ID,
		PreviousStatus:  previous,
		NewStatus:       next,
	}
}

// EventType returns the event type name
func (e *ClaimStatusChangedEvent) EventType() string {
	return EventTypeClaimStatusChanged
}
