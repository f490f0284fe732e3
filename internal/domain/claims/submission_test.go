package claims

import (
	"testing"
	"time"

	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceOf(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func testItems(t *testing.T) []inventory.Item {
	t.Helper()
	return []inventory.Item{
		{ID: uuid.New(), Name: "Television", PurchasePrice: priceOf(1200), Photos: []string{"tv.jpg"}},
		{ID: uuid.New(), Name: "Couch", PurchasePrice: priceOf(800)},
		{ID: uuid.New(), Name: "Lamp"}, // no price recorded
	}
}

func TestNewClaimSubmission(t *testing.T) {
	items := testItems(t)

	t.Run("creates claim with valid inputs", func(t *testing.T) {
		claim, err := NewClaimSubmission(FormatACORD, ClaimTypeFire, MethodEmail, items)
		require.NoError(t, err)
		require.NotNil(t, claim)

		assert.Equal(t, FormatACORD, claim.Insurer)
		assert.Equal(t, ClaimTypeFire, claim.ClaimType)
		assert.Equal(t, MethodEmail, claim.Method)
		assert.Equal(t, StatusDraft, claim.Status)
		assert.Equal(t, "xml", claim.ExportFormat)
		assert.Empty(t, claim.Correspondence)
		assert.Len(t, claim.GetDomainEvents(), 1)
	})

	t.Run("item count always equals item id list length", func(t *testing.T) {
		claim, err := NewClaimSubmission(FormatGeneric, ClaimTypeTheft, MethodEmail, items)
		require.NoError(t, err)
		assert.Equal(t, len(claim.ItemIDs), claim.TotalItemCount)
		assert.Equal(t, 3, claim.TotalItemCount)
	})

	t.Run("missing prices contribute zero to the total", func(t *testing.T) {
		claim, err := NewClaimSubmission(FormatGeneric, ClaimTypeTheft, MethodEmail, items)
		require.NoError(t, err)
		assert.True(t, claim.TotalClaimedValue.Equal(decimal.NewFromInt(2000)),
			"got %s", claim.TotalClaimedValue)
	})

	t.Run("empty selection is allowed at construction", func(t *testing.T) {
		claim, err := NewClaimSubmission(FormatGeneric, ClaimTypeOther, MethodEmail, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, claim.TotalItemCount)
		assert.True(t, claim.TotalClaimedValue.IsZero())
	})

	t.Run("rejects unknown insurer", func(t *testing.T) {
		_, err := NewClaimSubmission(InsurerFormat("AVIVA"), ClaimTypeFire, MethodEmail, items)
		assert.Error(t, err)
	})

	t.Run("rejects method the insurer does not accept", func(t *testing.T) {
		_, err := NewClaimSubmission(FormatAllstate, ClaimTypeFire, MethodCloudUpload, items)
		assert.Error(t, err)
	})
}

func TestClaimSubmission_TransitionTo(t *testing.T) {
	newClaim := func(t *testing.T) *ClaimSubmission {
		claim, err := NewClaimSubmission(FormatGeneric, ClaimTypeFire, MethodEmail, testItems(t))
		require.NoError(t, err)
		return claim
	}

	t.Run("sets status and appends exactly one correspondence record", func(t *testing.T) {
		claim := newClaim(t)
		require.NoError(t, claim.TransitionTo(StatusPreparing, ""))

		assert.Equal(t, StatusPreparing, claim.Status)
		require.Len(t, claim.Correspondence, 1)
		record := claim.Correspondence[0]
		assert.Equal(t, "Claim Status Update", record.Subject)
		assert.Contains(t, record.Content, "PREPARING")
		assert.Equal(t, DirectionReceived, record.Direction)
	})

	t.Run("accepts out-of-order transitions", func(t *testing.T) {
		claim := newClaim(t)
		// Insurer webhook reports approval straight from submitted
		require.NoError(t, claim.TransitionTo(StatusSubmitted, ""))
		require.NoError(t, claim.TransitionTo(StatusApproved, "fast-tracked"))
		assert.Equal(t, StatusApproved, claim.Status)
		assert.Len(t, claim.Correspondence, 2)
	})

	t.Run("any state may close directly", func(t *testing.T) {
		claim := newClaim(t)
		require.NoError(t, claim.TransitionTo(StatusUnderReview, ""))
		require.NoError(t, claim.TransitionTo(StatusClosed, "withdrawn by policyholder"))
		assert.Equal(t, StatusClosed, claim.Status)
	})

	t.Run("stamps submission date on first submitted transition", func(t *testing.T) {
		claim := newClaim(t)
		require.Nil(t, claim.SubmissionDate)
		require.NoError(t, claim.TransitionTo(StatusSubmitted, ""))
		require.NotNil(t, claim.SubmissionDate)

		first := *claim.SubmissionDate
		require.NoError(t, claim.TransitionTo(StatusAcknowledged, ""))
		require.NoError(t, claim.TransitionTo(StatusSubmitted, "resubmitted"))
		assert.Equal(t, first, *claim.SubmissionDate)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		claim := newClaim(t)
		assert.Error(t, claim.TransitionTo(ClaimStatus("LOST"), ""))
		assert.Empty(t, claim.Correspondence)
	})

	t.Run("notes land in the dated notes field", func(t *testing.T) {
		claim := newClaim(t)
		require.NoError(t, claim.TransitionTo(StatusAcknowledged, "adjuster assigned"))
		assert.Contains(t, claim.Notes, "adjuster assigned")
		assert.Contains(t, claim.Notes, time.Now().Format("2006-01-02"))
	})
}

func TestClaimSubmission_AttachArtifact(t *testing.T) {
	claim, err := NewClaimSubmission(FormatUSAA, ClaimTypeFlood, MethodCloudUpload, testItems(t))
	require.NoError(t, err)

	assert.False(t, claim.HasArtifact())
	assert.ErrorIs(t, claim.AttachArtifact("", 0), ErrFileNotFound)

	require.NoError(t, claim.AttachArtifact("/exports/claim.json", 2048))
	assert.True(t, claim.HasArtifact())
	assert.Equal(t, int64(2048), claim.ArtifactSize)
}

func TestClaimSubmission_AttachArtifactRaisesExportedEvent(t *testing.T) {
	claim, err := NewClaimSubmission(FormatUSAA, ClaimTypeFlood, MethodCloudUpload, testItems(t))
	require.NoError(t, err)
	claim.ClearDomainEvents()

	require.NoError(t, claim.AttachArtifact("/exports/claim.json", 2048))

	events := claim.GetDomainEvents()
	require.Len(t, events, 1)
	exported, ok := events[0].(*ClaimExportedEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypeClaimExported, exported.EventType())
	assert.Equal(t, claim.ID, exported.ClaimID)
	assert.Equal(t, "/exports/claim.json", exported.ArtifactRef)
	assert.Equal(t, int64(2048), exported.ArtifactSize)
}

func TestClaimSubmission_AppendCorrespondence(t *testing.T) {
	claim, err := NewClaimSubmission(FormatGeneric, ClaimTypeStorm, MethodEmail, testItems(t))
	require.NoError(t, err)

	first := NewCorrespondenceRecord(CorrespondenceEmail, DirectionSent, "Claim filed", "body", "claim.pdf")
	second := NewCorrespondenceRecord(CorrespondencePhone, DirectionReceived, "Adjuster call", "notes")

	claim.AppendCorrespondence(first)
	claim.AppendCorrespondence(second)

	require.Len(t, claim.Correspondence, 2)
	// Append-only: earlier entries are untouched
	assert.Equal(t, first.ID, claim.Correspondence[0].ID)
	assert.Equal(t, "Claim filed", claim.Correspondence[0].Subject)
	assert.Equal(t, []string{"claim.pdf"}, claim.Correspondence[0].Attachments)
}

func TestClaimSubmission_FileName(t *testing.T) {
	claim, err := NewClaimSubmission(FormatTravelers, ClaimTypeFire, MethodEmail, nil)
	require.NoError(t, err)

	name := claim.FileName()
	assert.Contains(t, name, "TRAVELERS_Claim_")
	assert.Contains(t, name, ".zip")
}
