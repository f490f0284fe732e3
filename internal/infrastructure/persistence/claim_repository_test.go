package persistence

import (
	"context"
	"testing"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/claimdesk/backend/internal/domain/shared"
	"github.com/claimdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupClaimTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.ClaimSubmissionModel{})
	require.NoError(t, err)

	return db
}

func newTestClaim(t *testing.T) *claims.ClaimSubmission {
	price := decimal.NewFromInt(1200)
	items := []inventory.Item{
		{ID: uuid.New(), Name: "Television", PurchasePrice: &price},
	}
	claim, err := claims.NewClaimSubmission(
		claims.FormatAllstate,
		claims.ClaimTypeTheft,
		claims.MethodEmail,
		items,
	)
	require.NoError(t, err)
	claim.SetPolicyNumber("POL-12345")
	return claim
}

func TestGormClaimRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormClaimRepository(setupClaimTestDB(t))
	claim := newTestClaim(t)

	require.NoError(t, repo.Save(context.Background(), claim))

	found, err := repo.FindByID(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, claim.ID, found.ID)
	assert.Equal(t, "POL-12345", found.PolicyNumber)
	assert.Equal(t, claims.FormatAllstate, found.Insurer)
	assert.Equal(t, claims.StatusDraft, found.Status)
	assert.Equal(t, claim.ItemIDs, found.ItemIDs)
	assert.True(t, decimal.NewFromInt(1200).Equal(found.TotalClaimedValue))
}

func TestGormClaimRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormClaimRepository(setupClaimTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormClaimRepository_UpdateRoundTripsCorrespondence(t *testing.T) {
	repo := NewGormClaimRepository(setupClaimTestDB(t))
	claim := newTestClaim(t)
	require.NoError(t, repo.Save(context.Background(), claim))

	require.NoError(t, claim.TransitionTo(claims.StatusSubmitted, "sent via email"))
	claim.AppendCorrespondence(claims.NewCorrespondenceRecord(
		claims.CorrespondencePhone,
		claims.DirectionReceived,
		"Adjuster call",
		"Inspection scheduled for next week",
	))
	require.NoError(t, repo.Save(context.Background(), claim))

	found, err := repo.FindByID(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, claims.StatusSubmitted, found.Status)
	require.Len(t, found.Correspondence, 2)
	assert.Equal(t, "Claim Status Update", found.Correspondence[0].Subject)
	assert.Equal(t, "Adjuster call", found.Correspondence[1].Subject)
	assert.NotNil(t, found.SubmissionDate)
}

func TestGormClaimRepository_SaveBumpsVersion(t *testing.T) {
	repo := NewGormClaimRepository(setupClaimTestDB(t))
	claim := newTestClaim(t)
	require.NoError(t, repo.Save(context.Background(), claim))
	assert.Equal(t, 1, claim.Version)

	claim.SetClaimNumber("CLM-2024-001")
	require.NoError(t, repo.Save(context.Background(), claim))
	assert.Equal(t, 2, claim.Version)

	found, err := repo.FindByID(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Version)
	assert.Equal(t, "CLM-2024-001", found.ClaimNumber)
}

func TestGormClaimRepository_FindActive(t *testing.T) {
	repo := NewGormClaimRepository(setupClaimTestDB(t))

	active := newTestClaim(t)
	require.NoError(t, repo.Save(context.Background(), active))

	settled := newTestClaim(t)
	require.NoError(t, settled.TransitionTo(claims.StatusSettled, ""))
	require.NoError(t, repo.Save(context.Background(), settled))

	closed := newTestClaim(t)
	require.NoError(t, closed.TransitionTo(claims.StatusClosed, ""))
	require.NoError(t, repo.Save(context.Background(), closed))

	list, err := repo.FindActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)
}

func TestGormClaimRepository_FindAllWithStatusFilter(t *testing.T) {
	repo := NewGormClaimRepository(setupClaimTestDB(t))

	draft := newTestClaim(t)
	require.NoError(t, repo.Save(context.Background(), draft))

	submitted := newTestClaim(t)
	require.NoError(t, submitted.TransitionTo(claims.StatusSubmitted, ""))
	require.NoError(t, repo.Save(context.Background(), submitted))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = string(claims.StatusSubmitted)

	list, err := repo.FindAll(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, submitted.ID, list[0].ID)

	count, err := repo.Count(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormClaimRepository_SearchMatchesPolicyNumber(t *testing.T) {
	repo := NewGormClaimRepository(setupClaimTestDB(t))

	claim := newTestClaim(t)
	require.NoError(t, repo.Save(context.Background(), claim))

	other := newTestClaim(t)
	other.SetPolicyNumber("OTHER-999")
	require.NoError(t, repo.Save(context.Background(), other))

	filter := shared.DefaultFilter()
	filter.Search = "POL-123"

	list, err := repo.FindAll(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, claim.ID, list[0].ID)
}

func TestGormClaimRepository_Delete(t *testing.T) {
	repo := NewGormClaimRepository(setupClaimTestDB(t))
	claim := newTestClaim(t)
	require.NoError(t, repo.Save(context.Background(), claim))

	require.NoError(t, repo.Delete(context.Background(), claim.ID))

	_, err := repo.FindByID(context.Background(), claim.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(context.Background(), claim.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
