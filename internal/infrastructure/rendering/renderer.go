package rendering

import (
	"context"
	"fmt"
	"strings"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
	"go.uber.org/zap"
)

// Renderer implements the artifact rendering backend behind the delegated
// export strategies. It composes the HTML form builder, the PDF engine,
// the spreadsheet writer and the archive assembler, and persists the
// result through the artifact store.
type Renderer struct {
	engine PDFEngine
	store  *LocalStore
	logger *zap.Logger
}

func NewRenderer(engine PDFEngine, store *LocalStore, logger *zap.Logger) *Renderer {
	return &Renderer{
		engine: engine,
		store:  store,
		logger: logger,
	}
}

// RenderArtifact produces the artifact for the requested template kind
func (r *Renderer) RenderArtifact(
	ctx context.Context,
	items []inventory.Item,
	categories []inventory.Category,
	rooms []inventory.Room,
	kind appclaims.TemplateKind,
	opts appclaims.RenderOptions,
) (*appclaims.RenderedArtifact, error) {
	var (
		data []byte
		err  error
	)

	switch kind {
	case appclaims.TemplateDetailedSpreadsheet:
		data, err = buildSpreadsheet(items, categories, rooms)

	case appclaims.TemplateStandardForm:
		data, err = r.renderForm(ctx, items, rooms, opts)

	case appclaims.TemplateDigitalPackage:
		data, err = r.renderPackage(ctx, items, categories, rooms, opts)

	default:
		return nil, fmt.Errorf("unknown template kind %q", kind)
	}
	if err != nil {
		return nil, err
	}

	fileRef, err := r.store.Write(ctx, opts.FileName, data)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("artifact rendered",
		zap.String("kind", string(kind)),
		zap.String("file_ref", fileRef),
		zap.Int("bytes", len(data)))

	return &appclaims.RenderedArtifact{
		FileRef:  fileRef,
		ByteSize: int64(len(data)),
	}, nil
}

func (r *Renderer) renderForm(ctx context.Context, items []inventory.Item, rooms []inventory.Room, opts appclaims.RenderOptions) ([]byte, error) {
	html, err := buildClaimFormHTML(items, rooms, opts.Title, opts.PolicyNumber)
	if err != nil {
		return nil, err
	}
	return r.engine.RenderHTML(ctx, html)
}

// renderPackage assembles the digital package: form PDF, spreadsheet and
// evidence manifest in one archive
func (r *Renderer) renderPackage(
	ctx context.Context,
	items []inventory.Item,
	categories []inventory.Category,
	rooms []inventory.Room,
	opts appclaims.RenderOptions,
) ([]byte, error) {
	form, err := r.renderForm(ctx, items, rooms, opts)
	if err != nil {
		return nil, err
	}
	sheet, err := buildSpreadsheet(items, categories, rooms)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(opts.FileName, ".zip")
	entries := []bundleEntry{
		{Name: base + ".pdf", Data: form},
		{Name: base + ".csv", Data: sheet},
	}
	if opts.IncludePhotos || opts.IncludeReceipts {
		entries = append(entries, bundleEntry{
			Name: "evidence_manifest.txt",
			Data: buildEvidenceManifest(items),
		})
	}

	return buildArchive(entries)
}

var _ appclaims.ArtifactRenderer = (*Renderer)(nil)
