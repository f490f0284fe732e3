package claims

import (
	"testing"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWizard_StartsAtStepOne(t *testing.T) {
	w := NewWizardState()
	assert.Equal(t, StepClaimDetails, w.Step)
	assert.False(t, w.CanAdvance(), "empty policy number blocks step one")
}

func TestWizard_AdvanceAndRetreatClamp(t *testing.T) {
	w := NewWizardState()

	for i := 0; i < TotalWizardSteps+3; i++ {
		w = w.Advance()
	}
	assert.Equal(t, StepSubmission, w.Step, "advance clamps at the last step")

	for i := 0; i < TotalWizardSteps+3; i++ {
		w = w.Retreat()
	}
	assert.Equal(t, StepClaimDetails, w.Step, "retreat clamps at the first step")
}

func TestWizard_MovementIsNotGated(t *testing.T) {
	// An incomplete step never traps the user; CanAdvance is advisory.
	w := NewWizardState()
	assert.False(t, w.CanAdvance())
	w = w.Advance()
	assert.Equal(t, StepItemSelection, w.Step)
}

func TestWizard_CanAdvancePerStep(t *testing.T) {
	itemID := uuid.New()

	t.Run("step one requires a non-blank policy number", func(t *testing.T) {
		w := NewWizardState()
		assert.False(t, w.WithClaimDetails("   ", claims.FormatGeneric, claims.ClaimTypeFire, nil).CanAdvance())
		assert.True(t, w.WithClaimDetails("POL-9", claims.FormatGeneric, claims.ClaimTypeFire, nil).CanAdvance())
	})

	t.Run("step two requires a non-empty selection", func(t *testing.T) {
		w := NewWizardState().Advance()
		assert.False(t, w.CanAdvance())
		assert.True(t, w.WithSelection([]uuid.UUID{itemID}).CanAdvance())
	})

	t.Run("step three requires a passing validation", func(t *testing.T) {
		w := NewWizardState().Advance().Advance()
		assert.False(t, w.CanAdvance(), "no validation results yet")

		blocked := w.WithValidation(&ClaimValidationResults{
			CriticalIssues: []claims.ValidationIssue{{Severity: claims.SeverityCritical}},
		})
		assert.False(t, blocked.CanAdvance())

		ready := w.WithValidation(&ClaimValidationResults{
			Warnings: []claims.ValidationIssue{{Severity: claims.SeverityWarning}},
		})
		assert.True(t, ready.CanAdvance(), "warnings never block")
	})

	t.Run("step four requires delivery readiness", func(t *testing.T) {
		w := NewWizardState().Advance().Advance().Advance()

		assert.False(t, w.WithMethod(claims.MethodEmail, "", NoServiceSelected()).CanAdvance())
		assert.True(t, w.WithMethod(claims.MethodEmail, "claims@example.com", NoServiceSelected()).CanAdvance())

		assert.False(t, w.WithMethod(claims.MethodCloudUpload, "", NoServiceSelected()).CanAdvance())
		assert.True(t, w.WithMethod(claims.MethodCloudUpload, "", SelectedService(&stubCloud{name: "S3"})).CanAdvance())

		assert.True(t, w.WithMethod(claims.MethodPhysicalMail, "", NoServiceSelected()).CanAdvance())
	})

	t.Run("step four rejects a method the insurer refuses", func(t *testing.T) {
		w := NewWizardState().
			WithClaimDetails("POL-9", claims.FormatProgressive, claims.ClaimTypeFire, nil).
			Advance().Advance().Advance()
		w = w.WithMethod(claims.MethodCloudUpload, "", SelectedService(&stubCloud{name: "S3"}))
		assert.False(t, w.CanAdvance())
	})
}

func TestWizard_ReducerIsImmutable(t *testing.T) {
	original := NewWizardState()
	_ = original.WithClaimDetails("POL-1", claims.FormatACORD, claims.ClaimTypeFlood, nil).Advance()

	assert.Equal(t, StepClaimDetails, original.Step)
	assert.Empty(t, original.PolicyNumber)
	assert.Equal(t, claims.FormatGeneric, original.Insurer)
}

func TestWizard_SelectionChangesInvalidateValidation(t *testing.T) {
	w := NewWizardState().WithValidation(&ClaimValidationResults{})
	assert.NotNil(t, w.Validation)

	assert.Nil(t, w.WithSelection([]uuid.UUID{uuid.New()}).Validation)
	assert.Nil(t, w.ToggleItem(uuid.New()).Validation)
	assert.Nil(t, w.WithClaimDetails("POL-1", claims.FormatACORD, claims.ClaimTypeFire, nil).Validation)
}

func TestWizard_ToggleItem(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	w := NewWizardState().ToggleItem(a).ToggleItem(b)
	assert.Equal(t, []uuid.UUID{a, b}, w.SelectedItemIDs)

	w = w.ToggleItem(a)
	assert.Equal(t, []uuid.UUID{b}, w.SelectedItemIDs)
}

func TestWizard_BuildConfigTrimsPolicyNumber(t *testing.T) {
	w := NewWizardState().
		WithClaimDetails("  POL-7  ", claims.FormatGeneric, claims.ClaimTypeStorm, nil).
		WithSelection([]uuid.UUID{uuid.New()}).
		WithMethod(claims.MethodEmail, "claims@example.com", NoServiceSelected())

	cfg := w.BuildConfig()
	assert.Equal(t, "POL-7", cfg.PolicyNumber)
	assert.Equal(t, claims.MethodEmail, cfg.Method)
	assert.Len(t, cfg.ItemIDs, 1)
}
