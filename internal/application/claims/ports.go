package claims

import (
	"context"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TemplateKind selects the rendering template for delegated export formats.
// The byte layout behind each kind is the rendering backend's concern.
type TemplateKind string

const (
	TemplateDetailedSpreadsheet TemplateKind = "detailed_spreadsheet"
	TemplateStandardForm        TemplateKind = "standard_form"
	TemplateDigitalPackage      TemplateKind = "digital_package"
)

// RenderOptions carries claim context into the rendering backend
type RenderOptions struct {
	FileName        string
	PolicyNumber    string
	IncludePhotos   bool
	IncludeReceipts bool
	Title           string
}

// RenderedArtifact is the opaque output of the rendering backend
type RenderedArtifact struct {
	FileRef  string
	ByteSize int64
}

// ArtifactRenderer is the byte-level rendering collaborator. Strategies
// shape items into a target representation and delegate rendering here.
type ArtifactRenderer interface {
	RenderArtifact(
		ctx context.Context,
		items []inventory.Item,
		categories []inventory.Category,
		rooms []inventory.Room,
		kind TemplateKind,
		opts RenderOptions,
	) (*RenderedArtifact, error)
}

// ArtifactStore persists raw artifact bytes produced by the native
// (non-delegated) strategies and resolves references for delivery
type ArtifactStore interface {
	Write(ctx context.Context, fileName string, data []byte) (fileRef string, err error)
	Exists(ctx context.Context, fileRef string) bool
}

// ExportResult is the outcome of a format-specific export
type ExportResult struct {
	FileRef    string
	Format     claims.InsurerFormat
	ItemCount  int
	TotalValue decimal.Decimal
	ByteSize   int64
}

// Exporter dispatches a claim to its insurer-specific export strategy
type Exporter interface {
	Export(
		ctx context.Context,
		items []inventory.Item,
		categories []inventory.Category,
		rooms []inventory.Room,
		format claims.InsurerFormat,
		claim *claims.ClaimSubmission,
	) (*ExportResult, error)
}

// MailChannel is the external mail-composition collaborator
type MailChannel interface {
	// CanSend reports whether mail capability is configured and available
	CanSend() bool

	// Compose builds and sends a claim email with the artifact attached
	Compose(ctx context.Context, recipient, subject, body, attachmentRef string) error
}

// CloudService is one named cloud-storage delivery target
type CloudService interface {
	// Name identifies the service ("S3", "Dropbox", ...)
	Name() string

	// Upload stores the artifact and returns the resulting upload URL
	Upload(ctx context.Context, fileRef, fileName string) (string, error)
}

// CloudServiceSelection makes "a service must be selected before upload"
// explicit: the zero value means no selection, and the only way to obtain
// a service out of it is the two-value Service accessor.
type CloudServiceSelection struct {
	service CloudService
}

// NoServiceSelected is the empty selection
func NoServiceSelected() CloudServiceSelection {
	return CloudServiceSelection{}
}

// SelectedService wraps a concrete cloud service choice
func SelectedService(service CloudService) CloudServiceSelection {
	return CloudServiceSelection{service: service}
}

// Service returns the selected service, if any
func (s CloudServiceSelection) Service() (CloudService, bool) {
	if s.service == nil {
		return nil, false
	}
	return s.service, true
}

// IsSelected reports whether a service has been chosen
func (s CloudServiceSelection) IsSelected() bool {
	return s.service != nil
}

// ClaimLocker serializes submissions of a claim: at most one
// export/submission may be in flight per claim identity at any time. The
// coordinator keys the lock on policy number and insurer, so retrying a
// failed submission of the same claim conflicts while it is in flight.
type ClaimLocker interface {
	// TryLock acquires the lock for a claim identity without blocking. It
	// returns a release function on success and
	// claims.ErrExportInProgress when the identity is already locked.
	TryLock(ctx context.Context, claimID uuid.UUID) (release func(), err error)
}

// ProgressFunc observes coordinator progress in [0.0, 1.0]. Purely
// observational; never used for control flow.
type ProgressFunc func(progress float64)
