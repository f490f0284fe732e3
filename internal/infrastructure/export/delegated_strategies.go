package export

import (
	"context"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
	"go.uber.org/zap"
)

// delegatedStrategy covers the strategy classes whose byte layout lives in
// the rendering backend: the strategy chooses the template and passes the
// claim context through.
type delegatedStrategy struct {
	name     string
	class    claims.StrategyClass
	kind     appclaims.TemplateKind
	renderer appclaims.ArtifactRenderer
}

// NewSpreadsheetStrategy exports the detailed item spreadsheet used by
// carriers that ingest tabular data
func NewSpreadsheetStrategy(renderer appclaims.ArtifactRenderer) Strategy {
	return &delegatedStrategy{
		name:     "detailed_spreadsheet",
		class:    claims.ClassSpreadsheet,
		kind:     appclaims.TemplateDetailedSpreadsheet,
		renderer: renderer,
	}
}

// NewPDFStrategy exports the standard narrative claim form
func NewPDFStrategy(renderer appclaims.ArtifactRenderer) Strategy {
	return &delegatedStrategy{
		name:     "standard_form",
		class:    claims.ClassPDF,
		kind:     appclaims.TemplateStandardForm,
		renderer: renderer,
	}
}

// NewBundleStrategy exports the comprehensive digital package: form,
// spreadsheet and evidence in one archive
func NewBundleStrategy(renderer appclaims.ArtifactRenderer) Strategy {
	return &delegatedStrategy{
		name:     "digital_package",
		class:    claims.ClassBundle,
		kind:     appclaims.TemplateDigitalPackage,
		renderer: renderer,
	}
}

func (s *delegatedStrategy) Name() string { return s.name }

func (s *delegatedStrategy) Class() claims.StrategyClass { return s.class }

func (s *delegatedStrategy) Export(
	ctx context.Context,
	items []inventory.Item,
	categories []inventory.Category,
	rooms []inventory.Room,
	claim *claims.ClaimSubmission,
) (*appclaims.ExportResult, error) {
	opts := appclaims.RenderOptions{
		FileName:        claim.FileName(),
		PolicyNumber:    claim.PolicyNumber,
		IncludePhotos:   s.class == claims.ClassBundle,
		IncludeReceipts: s.class == claims.ClassBundle,
		Title:           claim.Insurer.DisplayName() + " Claim",
	}

	artifact, err := s.renderer.RenderArtifact(ctx, items, categories, rooms, s.kind, opts)
	if err != nil {
		return nil, err
	}

	return &appclaims.ExportResult{
		FileRef:    artifact.FileRef,
		ItemCount:  len(items),
		TotalValue: claim.TotalClaimedValue,
		ByteSize:   artifact.ByteSize,
	}, nil
}

// NewDefaultRegistry builds a registry with all five strategies registered
func NewDefaultRegistry(store appclaims.ArtifactStore, renderer appclaims.ArtifactRenderer, logger *zap.Logger) (*Registry, error) {
	registry := NewRegistry(logger)
	for _, s := range []Strategy{
		NewXMLStrategy(store),
		NewSpreadsheetStrategy(renderer),
		NewPDFStrategy(renderer),
		NewBundleStrategy(renderer),
		NewJSONStrategy(store),
	} {
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}
	if err := registry.ValidateComplete(); err != nil {
		return nil, err
	}
	return registry, nil
}
