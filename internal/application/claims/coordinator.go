package claims

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/claimdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Progress checkpoints reported by the coordinator. Observational only.
const (
	progressShellBuilt = 0.2
	progressValidated  = 0.4
	progressExported   = 0.8
	progressDone       = 1.0
)

// ClaimConfig parameterizes one claim submission
type ClaimConfig struct {
	Insurer      claims.InsurerFormat
	ClaimType    claims.ClaimType
	Method       claims.SubmissionMethod
	ItemIDs      []uuid.UUID
	PolicyNumber string
	IncidentDate *time.Time

	// EmailRecipient is required when Method is email submission
	EmailRecipient string

	// Cloud is the destination selection for cloud-upload submission
	Cloud CloudServiceSelection

	// Requirements overrides the standard gate when set
	Requirements *claims.ValidationRequirements
}

// SubmissionOutcome is the result of a completed CreateAndSubmit run
type SubmissionOutcome struct {
	Claim      *claims.ClaimSubmission
	Export     *ExportResult
	Validation *ClaimValidationResults
}

// ExportCoordinator drives the claim pipeline end to end: fetch items,
// gate, export, persist, deliver. One instance is shared across requests;
// the per-claim locker serializes concurrent submissions of the same claim.
type ExportCoordinator struct {
	claimRepo     claims.SubmissionRepository
	inventoryRepo inventory.Repository
	validation    *ValidationService
	exporter      Exporter
	mail          MailChannel
	locker        ClaimLocker
	logger        *zap.Logger
	defaultReqs   claims.ValidationRequirements
}

// CoordinatorOption configures an ExportCoordinator
type CoordinatorOption func(*ExportCoordinator)

// WithDefaultRequirements replaces the standard gate configuration used
// when a submission does not carry its own requirements
func WithDefaultRequirements(reqs claims.ValidationRequirements) CoordinatorOption {
	return func(c *ExportCoordinator) {
		c.defaultReqs = reqs
	}
}

func NewExportCoordinator(
	claimRepo claims.SubmissionRepository,
	inventoryRepo inventory.Repository,
	validation *ValidationService,
	exporter Exporter,
	mail MailChannel,
	locker ClaimLocker,
	logger *zap.Logger,
	opts ...CoordinatorOption,
) *ExportCoordinator {
	c := &ExportCoordinator{
		claimRepo:     claimRepo,
		inventoryRepo: inventoryRepo,
		validation:    validation,
		exporter:      exporter,
		mail:          mail,
		locker:        locker,
		logger:        logger,
		defaultReqs:   claims.StandardRequirements(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateAndSubmit runs the full pipeline for a new claim. Nothing is
// persisted until the gate and the export both succeed, so a rejected or
// failed attempt leaves no partial claim behind. Delivery failures after
// persistence leave the claim in PREPARING for manual completion.
//
// onProgress may be nil.
func (c *ExportCoordinator) CreateAndSubmit(ctx context.Context, cfg ClaimConfig, onProgress ProgressFunc) (*SubmissionOutcome, error) {
	report := func(p float64) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	// Delivery preconditions fail before any work is done, not after the
	// artifact is built.
	if err := c.checkDeliveryReadiness(cfg); err != nil {
		return nil, err
	}

	policyNumber := strings.TrimSpace(cfg.PolicyNumber)
	if policyNumber == "" {
		return nil, shared.NewDomainError("MISSING_POLICY_NUMBER", "Policy number is required")
	}
	if len(cfg.ItemIDs) == 0 {
		return nil, shared.NewDomainError("EMPTY_SELECTION", "Select at least one item to claim")
	}

	// The lock keys on policy and insurer rather than the aggregate ID:
	// each run builds a fresh aggregate, so only a stable identity can
	// make two concurrent submissions of the same claim conflict.
	release, err := c.locker.TryLock(ctx, submissionLockID(policyNumber, cfg.Insurer))
	if err != nil {
		return nil, err
	}
	defer release()

	items, err := c.inventoryRepo.FetchItems(ctx, cfg.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch claim items: %w", err)
	}
	if len(items) == 0 {
		return nil, shared.ErrNotFound
	}

	claim, err := claims.NewClaimSubmission(cfg.Insurer, cfg.ClaimType, cfg.Method, items)
	if err != nil {
		return nil, err
	}
	claim.SetPolicyNumber(policyNumber)
	if cfg.IncidentDate != nil {
		claim.SetIncidentDate(*cfg.IncidentDate)
	}
	report(progressShellBuilt)

	reqs := c.defaultReqs
	if cfg.Requirements != nil {
		reqs = *cfg.Requirements
	}
	if err := claims.ValidateRequirements(items, cfg.Insurer, reqs); err != nil {
		c.logger.Info("claim rejected by validation gate",
			zap.String("insurer", string(cfg.Insurer)),
			zap.Error(err))
		return nil, err
	}
	report(progressValidated)

	categories, err := c.inventoryRepo.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	rooms, err := c.inventoryRepo.FetchRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}

	export, err := c.exporter.Export(ctx, items, categories, rooms, cfg.Insurer, claim)
	if err != nil {
		return nil, fmt.Errorf("export claim: %w", err)
	}
	if sizeIssues := claims.ValidateFileSize(export.ByteSize, reqs); len(sizeIssues) > 0 {
		return nil, claims.NewValidationFailedError([]string{sizeIssues[0].Description})
	}
	report(progressExported)

	if err := claim.AttachArtifact(export.FileRef, export.ByteSize); err != nil {
		return nil, err
	}
	if err := c.claimRepo.Save(ctx, claim); err != nil {
		return nil, fmt.Errorf("save claim: %w", err)
	}

	if err := c.deliver(ctx, claim, cfg); err != nil {
		return nil, err
	}
	report(progressDone)

	c.logger.Info("claim submitted",
		zap.String("claim_id", claim.ID.String()),
		zap.String("insurer", string(claim.Insurer)),
		zap.String("method", string(claim.Method)),
		zap.String("status", string(claim.Status)),
		zap.Int("item_count", claim.TotalItemCount),
		zap.Int64("artifact_size", claim.ArtifactSize),
	)

	return &SubmissionOutcome{
		Claim:      claim,
		Export:     export,
		Validation: c.validation.InspectItems(items, cfg.Insurer),
	}, nil
}

// submissionLockID derives a stable identity for one policy's claim
// against one insurer
func submissionLockID(policyNumber string, insurer claims.InsurerFormat) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(string(insurer)+"/"+policyNumber))
}

// checkDeliveryReadiness rejects configurations whose delivery leg cannot
// possibly succeed
func (c *ExportCoordinator) checkDeliveryReadiness(cfg ClaimConfig) error {
	switch cfg.Method {
	case claims.MethodCloudUpload:
		if !cfg.Cloud.IsSelected() {
			return claims.NewUploadFailedError("No cloud service selected")
		}
	case claims.MethodEmail:
		if strings.TrimSpace(cfg.EmailRecipient) == "" {
			return shared.NewDomainError("MISSING_RECIPIENT", "Email submission requires a recipient address")
		}
	}
	return nil
}

// deliver hands the persisted claim and artifact to the configured channel.
// Every path moves through PREPARING first so an interrupted delivery
// leaves the claim recoverable by manual submission.
func (c *ExportCoordinator) deliver(ctx context.Context, claim *claims.ClaimSubmission, cfg ClaimConfig) error {
	if err := claim.TransitionTo(claims.StatusPreparing, ""); err != nil {
		return err
	}
	if err := c.claimRepo.Save(ctx, claim); err != nil {
		return fmt.Errorf("save claim: %w", err)
	}

	if cfg.Method.RequiresManualSubmission() {
		return nil
	}

	switch cfg.Method {
	case claims.MethodEmail:
		return c.deliverByEmail(ctx, claim, cfg.EmailRecipient)
	case claims.MethodCloudUpload:
		return c.deliverByCloud(ctx, claim, cfg.Cloud)
	}
	return nil
}

func (c *ExportCoordinator) deliverByEmail(ctx context.Context, claim *claims.ClaimSubmission, recipient string) error {
	if !c.mail.CanSend() {
		// No mail capability configured. The claim stays in PREPARING and
		// the user sends the artifact themselves.
		claim.AppendNote("Email delivery unavailable; submit the export file manually")
		return c.claimRepo.Save(ctx, claim)
	}

	subject := DefaultEmailSubject(claim)
	body := DefaultEmailBody(claim)
	if err := c.mail.Compose(ctx, recipient, subject, body, claim.ArtifactRef); err != nil {
		c.logger.Warn("claim email delivery failed",
			zap.String("claim_id", claim.ID.String()),
			zap.Error(err))
		return claims.NewNetworkError(err)
	}

	claim.AppendCorrespondence(claims.NewCorrespondenceRecord(
		claims.CorrespondenceEmail,
		claims.DirectionSent,
		subject,
		body,
		claim.FileName(),
	))
	if err := claim.TransitionTo(claims.StatusSubmitted, ""); err != nil {
		return err
	}
	return c.claimRepo.Save(ctx, claim)
}

func (c *ExportCoordinator) deliverByCloud(ctx context.Context, claim *claims.ClaimSubmission, selection CloudServiceSelection) error {
	service, ok := selection.Service()
	if !ok {
		return claims.NewUploadFailedError("No cloud service selected")
	}

	url, err := service.Upload(ctx, claim.ArtifactRef, claim.FileName())
	if err != nil {
		c.logger.Warn("claim cloud upload failed",
			zap.String("claim_id", claim.ID.String()),
			zap.String("service", service.Name()),
			zap.Error(err))
		// Claim is already persisted in PREPARING; the upload can be
		// retried or the user can submit manually.
		return claims.NewUploadFailedError(err.Error())
	}

	claim.AppendCorrespondence(claims.NewCorrespondenceRecord(
		claims.CorrespondencePortal,
		claims.DirectionSent,
		"Claim Uploaded to "+service.Name(),
		fmt.Sprintf("Export file %s uploaded.\nURL: %s", claim.FileName(), url),
	))
	claim.SetConfirmationNumber(url)
	if err := claim.TransitionTo(claims.StatusSubmitted, ""); err != nil {
		return err
	}
	return c.claimRepo.Save(ctx, claim)
}
