package claims

import (
	"context"

	"github.com/claimdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubmissionRepository defines persistence for claim submissions
type SubmissionRepository interface {
	// FindByID finds a claim submission by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ClaimSubmission, error)

	// FindActive finds submissions whose status still needs attention
	// (everything except settled and closed), most recently updated first
	FindActive(ctx context.Context) ([]ClaimSubmission, error)

	// FindAll finds submissions with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]ClaimSubmission, error)

	// Save persists a claim submission (insert or update)
	Save(ctx context.Context, claim *ClaimSubmission) error

	// Delete removes a claim submission. Claims are never deleted except
	// by explicit user action.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts submissions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
