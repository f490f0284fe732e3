package claims

import (
	"fmt"
	"strings"

	"github.com/claimdesk/backend/internal/domain/shared"
)

// Sentinel errors for the claim export pipeline
var (
	// ErrFileNotFound means the export artifact was missing at delivery
	// time. This indicates a coordinator sequencing bug; the attempt is
	// fatal and the whole export should be retried.
	ErrFileNotFound = shared.NewDomainError("FILE_NOT_FOUND", "Export file not found; retry the export")

	// ErrInvalidFormat means an insurer format mapped to no export
	// strategy. This is a dispatch-table gap, a programming error.
	ErrInvalidFormat = shared.NewDomainError("INVALID_FORMAT", "Invalid export format: no strategy registered")

	// ErrExportInProgress rejects a concurrent submission attempt on a
	// claim that already has an export in flight.
	ErrExportInProgress = shared.NewDomainError("EXPORT_IN_PROGRESS", "An export for this claim is already in progress")
)

// ValidationFailedError is the blocking pre-export gate failure. It is
// fully recoverable: the user fixes the item data and retries.
type ValidationFailedError struct {
	Reasons []string
}

// Error implements the error interface
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("claim validation failed: %s", strings.Join(e.Reasons, ", "))
}

// RecoverySuggestion tells the user how to proceed
func (e *ValidationFailedError) RecoverySuggestion() string {
	return "Fix the reported item issues and validate again before submitting"
}

// NewValidationFailedError creates a gate failure from the collected reasons
func NewValidationFailedError(reasons []string) *ValidationFailedError {
	return &ValidationFailedError{Reasons: reasons}
}

// UploadFailedError is a recoverable cloud delivery failure; retry with
// backoff is appropriate since it is a network operation.
type UploadFailedError struct {
	Reason string
}

// Error implements the error interface
func (e *UploadFailedError) Error() string {
	return fmt.Sprintf("upload failed: %s", e.Reason)
}

// RecoverySuggestion tells the user how to proceed
func (e *UploadFailedError) RecoverySuggestion() string {
	if strings.Contains(e.Reason, "No cloud service") {
		return "Select a cloud service before uploading"
	}
	return "Check the network connection and retry the upload"
}

// NewUploadFailedError creates an UploadFailedError
func NewUploadFailedError(reason string) *UploadFailedError {
	return &UploadFailedError{Reason: reason}
}

// NetworkError wraps a transport failure. Recoverable via retry.
type NetworkError struct {
	Inner error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Inner)
}

// Unwrap exposes the wrapped transport error
func (e *NetworkError) Unwrap() error {
	return e.Inner
}

// NewNetworkError wraps a transport failure
func NewNetworkError(inner error) *NetworkError {
	return &NetworkError{Inner: inner}
}
