package claims

import (
	"context"
	"sort"
	"time"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// followUpIntervals suggests when to chase the insurer after entering a
// status. Statuses not listed need no follow-up.
var followUpIntervals = map[claims.ClaimStatus]time.Duration{
	claims.StatusSubmitted:         7 * 24 * time.Hour,
	claims.StatusAcknowledged:      14 * 24 * time.Hour,
	claims.StatusPendingDocuments:  3 * 24 * time.Hour,
	claims.StatusUnderReview:       21 * 24 * time.Hour,
	claims.StatusSettlementOffered: 7 * 24 * time.Hour,
}

// TimelineEntry is one event in a claim's reconstructed history
type TimelineEntry struct {
	Date        time.Time                 `json:"date"`
	Type        claims.CorrespondenceType `json:"type"`
	Direction   claims.Direction          `json:"direction"`
	Subject     string                    `json:"subject"`
	Content     string                    `json:"content"`
	Attachments []string                  `json:"attachments,omitempty"`
}

// TrackingService manages submitted claims through their lifecycle: status
// updates, correspondence, follow-ups and the claim list views.
type TrackingService struct {
	claimRepo claims.SubmissionRepository
	logger    *zap.Logger
}

func NewTrackingService(claimRepo claims.SubmissionRepository, logger *zap.Logger) *TrackingService {
	return &TrackingService{
		claimRepo: claimRepo,
		logger:    logger,
	}
}

// GetClaim loads a single claim submission
func (s *TrackingService) GetClaim(ctx context.Context, id uuid.UUID) (*claims.ClaimSubmission, error) {
	return s.claimRepo.FindByID(ctx, id)
}

// ListActiveClaims returns claims that still need attention, most recently
// updated first
func (s *TrackingService) ListActiveClaims(ctx context.Context) ([]claims.ClaimSubmission, error) {
	return s.claimRepo.FindActive(ctx)
}

// ListClaims returns claims matching the filter
func (s *TrackingService) ListClaims(ctx context.Context, filter shared.Filter) ([]claims.ClaimSubmission, int64, error) {
	list, err := s.claimRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.claimRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateStatus moves a claim to a new status, records the change in the
// correspondence ledger and schedules a follow-up when the new status
// warrants one
func (s *TrackingService) UpdateStatus(ctx context.Context, id uuid.UUID, status claims.ClaimStatus, notes string) (*claims.ClaimSubmission, error) {
	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := claim.Status
	if err := claim.TransitionTo(status, notes); err != nil {
		return nil, err
	}

	if interval, ok := followUpIntervals[status]; ok {
		claim.SetFollowUpDate(time.Now().Add(interval))
	}

	if err := s.claimRepo.Save(ctx, claim); err != nil {
		return nil, err
	}

	s.logger.Info("claim status updated",
		zap.String("claim_id", id.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	return claim, nil
}

// AddCorrespondence appends a communication record to the claim's ledger
func (s *TrackingService) AddCorrespondence(
	ctx context.Context,
	id uuid.UUID,
	corrType claims.CorrespondenceType,
	direction claims.Direction,
	subject, content string,
	attachments ...string,
) (*claims.ClaimSubmission, error) {
	if !corrType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CORRESPONDENCE_TYPE", "Unknown correspondence type")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Unknown correspondence direction")
	}

	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	claim.AppendCorrespondence(claims.NewCorrespondenceRecord(corrType, direction, subject, content, attachments...))

	if err := s.claimRepo.Save(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// SetConfirmationNumber records the insurer's confirmation reference
func (s *TrackingService) SetConfirmationNumber(ctx context.Context, id uuid.UUID, confirmation string) (*claims.ClaimSubmission, error) {
	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	claim.SetConfirmationNumber(confirmation)
	if err := s.claimRepo.Save(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

// Timeline reconstructs a claim's history from its correspondence ledger,
// oldest first. The ledger is the source of truth; no separate event log
// is kept.
func (s *TrackingService) Timeline(ctx context.Context, id uuid.UUID) ([]TimelineEntry, error) {
	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, len(claim.Correspondence))
	for _, record := range claim.Correspondence {
		entries = append(entries, TimelineEntry{
			Date:        record.Date,
			Type:        record.Type,
			Direction:   record.Direction,
			Subject:     record.Subject,
			Content:     record.Content,
			Attachments: record.Attachments,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

// DeleteClaim removes a claim. Only explicit user action reaches here.
func (s *TrackingService) DeleteClaim(ctx context.Context, id uuid.UUID) error {
	if err := s.claimRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("claim deleted", zap.String("claim_id", id.String()))
	return nil
}
