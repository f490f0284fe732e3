package claims

import (
	"context"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClaimValidationResults is the advisory completeness report for a
// prospective claim. It never blocks anything; the hard gate is
// claims.ValidateRequirements.
type ClaimValidationResults struct {
	Format            claims.InsurerFormat     `json:"format"`
	ItemCount         int                      `json:"item_count"`
	CompletenessRatio float64                  `json:"completeness_ratio"`
	Grade             claims.CompletenessGrade `json:"grade"`
	CriticalIssues    []claims.ValidationIssue `json:"critical_issues"`
	Warnings          []claims.ValidationIssue `json:"warnings"`
	Suggestions       []claims.ValidationIssue `json:"suggestions"`
}

// IsReadyForSubmission reports whether the selection has no blocking
// issues. Warnings and suggestions never affect readiness.
func (r *ClaimValidationResults) IsReadyForSubmission() bool {
	return len(r.CriticalIssues) == 0
}

// TotalIssueCount sums issues across all buckets
func (r *ClaimValidationResults) TotalIssueCount() int {
	return len(r.CriticalIssues) + len(r.Warnings) + len(r.Suggestions)
}

// ValidationService runs the advisory inspection pass over a claim's items
type ValidationService struct {
	inventoryRepo inventory.Repository
	logger        *zap.Logger
}

func NewValidationService(inventoryRepo inventory.Repository, logger *zap.Logger) *ValidationService {
	return &ValidationService{
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

// InspectSelection fetches the selected items and builds the completeness
// report for the given insurer format. Results are recomputed in full on
// every call; nothing is persisted.
func (s *ValidationService) InspectSelection(ctx context.Context, itemIDs []uuid.UUID, format claims.InsurerFormat) (*ClaimValidationResults, error) {
	if !format.IsValid() {
		return nil, claims.ErrInvalidFormat
	}

	items, err := s.inventoryRepo.FetchItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	return s.InspectItems(items, format), nil
}

// InspectItems builds the completeness report for an already-fetched item
// set. Exported separately so the coordinator can reuse fetched items
// without a second repository round trip.
func (s *ValidationService) InspectItems(items []inventory.Item, format claims.InsurerFormat) *ClaimValidationResults {
	issues := claims.InspectItems(items)
	issues = append(issues, claims.InspectForFormat(items, format)...)

	results := &ClaimValidationResults{
		Format:         format,
		ItemCount:      len(items),
		CriticalIssues: make([]claims.ValidationIssue, 0),
		Warnings:       make([]claims.ValidationIssue, 0),
		Suggestions:    make([]claims.ValidationIssue, 0),
	}

	for _, issue := range issues {
		switch issue.Severity {
		case claims.SeverityCritical:
			results.CriticalIssues = append(results.CriticalIssues, issue)
		case claims.SeverityError, claims.SeverityWarning:
			results.Warnings = append(results.Warnings, issue)
		case claims.SeverityInfo:
			results.Suggestions = append(results.Suggestions, issue)
		}
	}

	results.CompletenessRatio = claims.CompletenessRatio(issues, len(items))
	results.Grade = claims.GradeForRatio(results.CompletenessRatio)

	s.logger.Debug("claim selection inspected",
		zap.String("format", string(format)),
		zap.Int("item_count", len(items)),
		zap.Float64("completeness_ratio", results.CompletenessRatio),
		zap.String("grade", string(results.Grade)),
		zap.Int("critical", len(results.CriticalIssues)),
		zap.Int("warnings", len(results.Warnings)),
		zap.Int("suggestions", len(results.Suggestions)),
	)

	return results
}
