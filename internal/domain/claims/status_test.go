package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, ClaimStatus("REOPENED").IsValid())
	assert.False(t, ClaimStatus("").IsValid())
}

func TestClaimStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   ClaimStatus
		terminal bool
	}{
		{StatusDraft, false},
		{StatusPreparing, false},
		{StatusSubmitted, false},
		{StatusAcknowledged, false},
		{StatusPendingDocuments, false},
		{StatusUnderReview, false},
		{StatusScheduledInspection, false},
		{StatusApproved, false},
		{StatusSettlementOffered, false},
		{StatusDenied, true},
		{StatusSettled, true},
		{StatusClosed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestClaimStatus_IsActive(t *testing.T) {
	assert.True(t, StatusPreparing.IsActive())
	assert.True(t, StatusDenied.IsActive()) // denied claims still need attention
	assert.False(t, StatusSettled.IsActive())
	assert.False(t, StatusClosed.IsActive())
}

func TestClaimStatus_Severity(t *testing.T) {
	tests := []struct {
		status   ClaimStatus
		severity StatusSeverity
	}{
		{StatusDraft, SeverityPending},
		{StatusPreparing, SeverityPending},
		{StatusSubmitted, SeverityInProgress},
		{StatusAcknowledged, SeverityInProgress},
		{StatusPendingDocuments, SeverityAttention},
		{StatusUnderReview, SeverityAttention},
		{StatusScheduledInspection, SeverityScheduled},
		{StatusApproved, SeverityPositive},
		{StatusSettlementOffered, SeverityPositive},
		{StatusSettled, SeverityPositive},
		{StatusDenied, SeverityFinal},
		{StatusClosed, SeverityFinal},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.severity, tt.status.Severity())
		})
	}
}
