package claims

import (
	"strings"
	"time"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/google/uuid"
)

// TotalWizardSteps is the number of steps in the claim submission wizard:
// claim details, item selection, validation review, submission method.
const TotalWizardSteps = 4

// Wizard step numbers
const (
	StepClaimDetails  = 1
	StepItemSelection = 2
	StepValidation    = 3
	StepSubmission    = 4
)

// WizardState is the immutable state of the claim submission wizard. Every
// reducer method returns a derived copy; callers replace their state with
// the return value. The zero-ish NewWizardState is step 1 with defaults.
type WizardState struct {
	Step int

	// Step 1: claim details
	PolicyNumber string
	Insurer      claims.InsurerFormat
	ClaimType    claims.ClaimType
	IncidentDate *time.Time

	// Step 2: item selection
	SelectedItemIDs []uuid.UUID

	// Step 3: validation review
	Validation *ClaimValidationResults

	// Step 4: submission method
	Method         claims.SubmissionMethod
	EmailRecipient string
	Cloud          CloudServiceSelection
}

// NewWizardState starts the wizard at step 1 with sensible defaults
func NewWizardState() WizardState {
	return WizardState{
		Step:      StepClaimDetails,
		Insurer:   claims.FormatGeneric,
		ClaimType: claims.ClaimTypeOther,
		Method:    claims.MethodEmail,
	}
}

// Advance moves to the next step, clamped at the last. Movement itself is
// never gated; CanAdvance is the advisory check the caller consults before
// enabling the control.
func (w WizardState) Advance() WizardState {
	if w.Step < TotalWizardSteps {
		w.Step++
	}
	return w
}

// Retreat moves to the previous step, clamped at the first
func (w WizardState) Retreat() WizardState {
	if w.Step > StepClaimDetails {
		w.Step--
	}
	return w
}

// WithClaimDetails sets the step-1 fields
func (w WizardState) WithClaimDetails(policyNumber string, insurer claims.InsurerFormat, claimType claims.ClaimType, incidentDate *time.Time) WizardState {
	w.PolicyNumber = policyNumber
	w.Insurer = insurer
	w.ClaimType = claimType
	w.IncidentDate = incidentDate
	// Insurer changes invalidate any earlier validation pass
	w.Validation = nil
	return w
}

// WithSelection sets the step-2 item selection
func (w WizardState) WithSelection(itemIDs []uuid.UUID) WizardState {
	w.SelectedItemIDs = append([]uuid.UUID(nil), itemIDs...)
	w.Validation = nil
	return w
}

// ToggleItem adds or removes one item from the selection
func (w WizardState) ToggleItem(itemID uuid.UUID) WizardState {
	next := make([]uuid.UUID, 0, len(w.SelectedItemIDs)+1)
	found := false
	for _, id := range w.SelectedItemIDs {
		if id == itemID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, itemID)
	}
	w.SelectedItemIDs = next
	w.Validation = nil
	return w
}

// WithValidation records the step-3 validation results
func (w WizardState) WithValidation(results *ClaimValidationResults) WizardState {
	w.Validation = results
	return w
}

// WithMethod sets the step-4 submission method and delivery details
func (w WizardState) WithMethod(method claims.SubmissionMethod, emailRecipient string, cloud CloudServiceSelection) WizardState {
	w.Method = method
	w.EmailRecipient = emailRecipient
	w.Cloud = cloud
	return w
}

// CanAdvance reports whether the current step is complete enough to
// proceed. Step 3 requires a validation pass with no blocking issues;
// step 4 is the final step and reports overall submit readiness.
func (w WizardState) CanAdvance() bool {
	switch w.Step {
	case StepClaimDetails:
		return strings.TrimSpace(w.PolicyNumber) != "" && w.Insurer.IsValid() && w.ClaimType.IsValid()
	case StepItemSelection:
		return len(w.SelectedItemIDs) > 0
	case StepValidation:
		return w.Validation != nil && w.Validation.IsReadyForSubmission()
	case StepSubmission:
		if !w.Insurer.AllowsMethod(w.Method) {
			return false
		}
		switch w.Method {
		case claims.MethodEmail:
			return strings.TrimSpace(w.EmailRecipient) != ""
		case claims.MethodCloudUpload:
			return w.Cloud.IsSelected()
		}
		return true
	}
	return false
}

// Progress reports wizard completion in [0, 1]
func (w WizardState) Progress() float64 {
	return float64(w.Step) / float64(TotalWizardSteps)
}

// BuildConfig assembles the coordinator configuration from a completed
// wizard
func (w WizardState) BuildConfig() ClaimConfig {
	return ClaimConfig{
		Insurer:        w.Insurer,
		ClaimType:      w.ClaimType,
		Method:         w.Method,
		ItemIDs:        w.SelectedItemIDs,
		PolicyNumber:   strings.TrimSpace(w.PolicyNumber),
		IncidentDate:   w.IncidentDate,
		EmailRecipient: w.EmailRecipient,
		Cloud:          w.Cloud,
	}
}
