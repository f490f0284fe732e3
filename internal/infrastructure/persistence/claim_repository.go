package persistence

import (
	"context"
	"errors"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/shared"
	"github.com/claimdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClaimRepository implements claims.SubmissionRepository using GORM
type GormClaimRepository struct {
	db *gorm.DB
}

// NewGormClaimRepository creates a new GormClaimRepository
func NewGormClaimRepository(db *gorm.DB) *GormClaimRepository {
	return &GormClaimRepository{db: db}
}

// FindByID finds a claim submission by its ID
func (r *GormClaimRepository) FindByID(ctx context.Context, id uuid.UUID) (*claims.ClaimSubmission, error) {
	var model models.ClaimSubmissionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindActive finds submissions whose status still needs attention,
// most recently updated first
func (r *GormClaimRepository) FindActive(ctx context.Context) ([]claims.ClaimSubmission, error) {
	var list []models.ClaimSubmissionModel
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []string{string(claims.StatusSettled), string(claims.StatusClosed)}).
		Order("updated_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(list)
}

// FindAll finds submissions with filtering
func (r *GormClaimRepository) FindAll(ctx context.Context, filter shared.Filter) ([]claims.ClaimSubmission, error) {
	var list []models.ClaimSubmissionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ClaimSubmissionModel{}),
		filter,
	)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(list)
}

// Save persists a claim submission. Inserts use Create so a stale fetch
// cannot silently resurrect a deleted claim; updates use an optimistic
// version check.
func (r *GormClaimRepository) Save(ctx context.Context, claim *claims.ClaimSubmission) error {
	var model models.ClaimSubmissionModel
	if err := model.FromDomain(claim); err != nil {
		return err
	}

	var existing models.ClaimSubmissionModel
	err := r.db.WithContext(ctx).Select("version").First(&existing, "id = ?", claim.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return err
		}
		return nil
	}
	if err != nil {
		return err
	}

	model.Version = existing.Version + 1
	// Select("*") so zero-valued fields are written too; struct Updates
	// would otherwise skip them
	result := r.db.WithContext(ctx).
		Model(&models.ClaimSubmissionModel{}).
		Where("id = ? AND version = ?", claim.ID, existing.Version).
		Select("*").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	claim.Version = model.Version
	return nil
}

// Delete removes a claim submission
func (r *GormClaimRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClaimSubmissionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts submissions matching the filter
func (r *GormClaimRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.ClaimSubmissionModel{}),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClaimRepository) toDomainList(list []models.ClaimSubmissionModel) ([]claims.ClaimSubmission, error) {
	result := make([]claims.ClaimSubmission, 0, len(list))
	for i := range list {
		claim, err := list[i].ToDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, *claim)
	}
	return result, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormClaimRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ClaimSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormClaimRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"claim_number LIKE ? OR policy_number LIKE ? OR notes LIKE ?",
			pattern, pattern, pattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "insurer":
			query = query.Where("insurer = ?", value)
		case "claim_type":
			query = query.Where("claim_type = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		case "active":
			if value == true {
				query = query.Where("status NOT IN ?",
					[]string{string(claims.StatusSettled), string(claims.StatusClosed)})
			}
		case "follow_up_due":
			if value == true {
				query = query.Where("follow_up_date IS NOT NULL AND follow_up_date <= CURRENT_TIMESTAMP")
			}
		}
	}

	return query
}

// Ensure GormClaimRepository implements SubmissionRepository
var _ claims.SubmissionRepository = (*GormClaimRepository)(nil)
