package claims

// ClaimStatus represents the lifecycle status of a claim submission
type ClaimStatus string

const (
	StatusDraft               ClaimStatus = "DRAFT"
	StatusPreparing           ClaimStatus = "PREPARING"
	StatusSubmitted           ClaimStatus = "SUBMITTED"
	StatusAcknowledged        ClaimStatus = "ACKNOWLEDGED"
	StatusPendingDocuments    ClaimStatus = "PENDING_DOCUMENTS"
	StatusUnderReview         ClaimStatus = "UNDER_REVIEW"
	StatusScheduledInspection ClaimStatus = "SCHEDULED_INSPECTION"
	StatusApproved            ClaimStatus = "APPROVED"
	StatusSettlementOffered   ClaimStatus = "SETTLEMENT_OFFERED"
	StatusDenied              ClaimStatus = "DENIED"
	StatusSettled             ClaimStatus = "SETTLED"
	StatusClosed              ClaimStatus = "CLOSED"
)

// AllStatuses lists every claim status
var AllStatuses = []ClaimStatus{
	StatusDraft,
	StatusPreparing,
	StatusSubmitted,
	StatusAcknowledged,
	StatusPendingDocuments,
	StatusUnderReview,
	StatusScheduledInspection,
	StatusApproved,
	StatusSettlementOffered,
	StatusDenied,
	StatusSettled,
	StatusClosed,
}

// IsValid checks if the status is a known ClaimStatus
func (s ClaimStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// String returns the string representation of ClaimStatus
func (s ClaimStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status ends the claim lifecycle.
// Denied, settled and closed claims accept no further transitions
// except explicit user deletion.
func (s ClaimStatus) IsTerminal() bool {
	switch s {
	case StatusDenied, StatusSettled, StatusClosed:
		return true
	}
	return false
}

// IsActive reports whether the claim still needs attention.
// Settled and closed claims drop off the active submission list.
func (s ClaimStatus) IsActive() bool {
	return s != StatusSettled && s != StatusClosed
}

// StatusSeverity groups statuses for display purposes
type StatusSeverity string

const (
	SeverityPending    StatusSeverity = "pending"     // orange: draft, preparing
	SeverityInProgress StatusSeverity = "in_progress" // blue: submitted, acknowledged
	SeverityAttention  StatusSeverity = "attention"   // yellow: pending docs, under review
	SeverityScheduled  StatusSeverity = "scheduled"   // purple: inspection
	SeverityPositive   StatusSeverity = "positive"    // green: approved, offered, settled
	SeverityFinal      StatusSeverity = "final"       // gray: denied, closed
)

// Severity returns the display severity group for the status
func (s ClaimStatus) Severity() StatusSeverity {
	switch s {
	case StatusDraft, StatusPreparing:
		return SeverityPending
	case StatusSubmitted, StatusAcknowledged:
		return SeverityInProgress
	case StatusPendingDocuments, StatusUnderReview:
		return SeverityAttention
	case StatusScheduledInspection:
		return SeverityScheduled
	case StatusApproved, StatusSettlementOffered, StatusSettled:
		return SeverityPositive
	case StatusDenied, StatusClosed:
		return SeverityFinal
	}
	return SeverityPending
}
