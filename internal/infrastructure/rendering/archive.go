package rendering

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/claimdesk/backend/internal/domain/inventory"
)

// bundleEntry is one file inside the digital package archive
type bundleEntry struct {
	Name string
	Data []byte
}

// buildArchive assembles the digital claim package: the claim form PDF,
// the item spreadsheet and an evidence manifest listing photo and receipt
// references per item. Actual media files live in the user's attachment
// storage; the manifest ties them to the claim.
func buildArchive(entries []bundleEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, entry := range entries {
		header := &zip.FileHeader{
			Name:     entry.Name,
			Method:   zip.Deflate,
			Modified: time.Now(),
		}
		f, err := w.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", entry.Name, err)
		}
		if _, err := f.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", entry.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// buildEvidenceManifest lists the photo and receipt references for every
// item in the claim
func buildEvidenceManifest(items []inventory.Item) []byte {
	var b strings.Builder
	b.WriteString("Evidence Manifest\n")
	b.WriteString("=================\n\n")

	for i := range items {
		item := &items[i]
		fmt.Fprintf(&b, "%s\n", item.Name)
		if len(item.Photos) == 0 && len(item.Receipts) == 0 {
			b.WriteString("  (no evidence on file)\n")
		}
		for _, photo := range item.Photos {
			fmt.Fprintf(&b, "  photo:   %s\n", photo)
		}
		for _, receipt := range item.Receipts {
			fmt.Fprintf(&b, "  receipt: %s\n", receipt)
		}
		b.WriteString("\n")
	}

	return []byte(b.String())
}
