// Package storage provides cloud delivery targets for claim artifacts.
package storage

import (
	"context"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
)

// StubCloudService is a placeholder cloud delivery target for development.
// It pretends every upload succeeds and hands back a deterministic URL.
type StubCloudService struct {
	// BaseURL is the base for generated upload URLs.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string
	reader  ArtifactReader
}

// NewStubCloudService creates a StubCloudService
func NewStubCloudService(reader ArtifactReader) *StubCloudService {
	return &StubCloudService{
		BaseURL: "https://storage.example.com",
		reader:  reader,
	}
}

// Ensure StubCloudService implements the cloud delivery port
var _ appclaims.CloudService = (*StubCloudService)(nil)

// Name identifies the service
func (s *StubCloudService) Name() string { return "Stub" }

// Upload verifies the artifact exists and returns a fake download URL
func (s *StubCloudService) Upload(ctx context.Context, fileRef, fileName string) (string, error) {
	if s.reader != nil {
		if _, err := s.reader.Read(ctx, fileRef); err != nil {
			return "", claims.ErrFileNotFound
		}
	}
	return s.BaseURL + "/claims/" + fileName, nil
}
