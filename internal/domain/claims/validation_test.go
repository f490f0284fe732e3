package claims

import (
	"testing"
	"time"

	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeItem(name string, price float64) inventory.Item {
	p := decimal.NewFromFloat(price)
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	catID := uuid.New()
	return inventory.Item{
		ID:            uuid.New(),
		Name:          name,
		CategoryID:    &catID,
		CategoryName:  "Electronics",
		SerialNumber:  "SN-12345",
		PurchasePrice: &p,
		PurchaseDate:  &d,
		Photos:        []string{name + ".jpg"},
		Receipts:      []string{name + "-receipt.pdf"},
	}
}

func TestInspectItems(t *testing.T) {
	t.Run("complete items yield no issues", func(t *testing.T) {
		items := []inventory.Item{completeItem("Laptop", 1500), completeItem("Desk", 300)}
		assert.Empty(t, InspectItems(items))
	})

	t.Run("missing photo is a warning", func(t *testing.T) {
		item := completeItem("Laptop", 1500)
		item.Photos = nil
		issues := InspectItems([]inventory.Item{item})
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Equal(t, CategoryMissingPhoto, issues[0].Category)
	})

	t.Run("missing purchase price is an error", func(t *testing.T) {
		item := completeItem("Couch", 0)
		item.PurchasePrice = nil
		issues := InspectItems([]inventory.Item{item})
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityError, issues[0].Severity)
		assert.Equal(t, CategoryMissingValue, issues[0].Category)
	})

	t.Run("missing purchase date is informational", func(t *testing.T) {
		item := completeItem("Chair", 120)
		item.PurchaseDate = nil
		issues := InspectItems([]inventory.Item{item})
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityInfo, issues[0].Severity)
		assert.Equal(t, CategoryMissingDate, issues[0].Category)
	})

	t.Run("issue carries item identity", func(t *testing.T) {
		item := completeItem("Watch", 900)
		item.SerialNumber = ""
		issues := InspectItems([]inventory.Item{item})
		require.Len(t, issues, 1)
		assert.Equal(t, item.ID, issues[0].ItemID)
		assert.Equal(t, "Watch", issues[0].ItemName)
	})
}

// A $600 item without a serial number warrants a missing-serial warning;
// a $400 item does not cross the threshold.
func TestInspectItems_HighValueSerialThreshold(t *testing.T) {
	expensive := completeItem("Camera", 600)
	expensive.SerialNumber = ""
	cheap := completeItem("Toaster", 400)
	cheap.SerialNumber = ""

	issues := InspectItems([]inventory.Item{expensive, cheap})
	require.Len(t, issues, 1)
	assert.Equal(t, expensive.ID, issues[0].ItemID)
	assert.Equal(t, CategoryMissingSerial, issues[0].Category)
	assert.Equal(t, SeverityWarning, issues[0].Severity)

	// Exactly at the threshold: not flagged
	atThreshold := completeItem("Monitor", 500)
	atThreshold.SerialNumber = ""
	assert.Empty(t, InspectItems([]inventory.Item{atThreshold}))
}

// Two passes over an unchanged item set yield identical findings.
func TestInspectItems_Deterministic(t *testing.T) {
	items := []inventory.Item{
		completeItem("A", 100),
		{ID: uuid.New(), Name: "B"},
		completeItem("C", 700),
	}
	items[2].SerialNumber = ""

	first := InspectItems(items)
	second := InspectItems(items)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ItemID, second[i].ItemID)
		assert.Equal(t, first[i].Severity, second[i].Severity)
		assert.Equal(t, first[i].Category, second[i].Category)
		assert.Equal(t, first[i].Description, second[i].Description)
	}
}

func TestInspectForFormat(t *testing.T) {
	t.Run("xml class warns on missing category", func(t *testing.T) {
		item := completeItem("Rug", 250)
		item.CategoryID = nil
		item.CategoryName = ""
		issues := InspectForFormat([]inventory.Item{item}, FormatACORD)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Equal(t, CategoryFormatSpecific, issues[0].Category)
	})

	t.Run("spreadsheet class errors on missing price", func(t *testing.T) {
		item := completeItem("Sofa", 0)
		item.PurchasePrice = nil
		for _, f := range []InsurerFormat{FormatAllstate, FormatStateFarm, FormatGEICO} {
			issues := InspectForFormat([]inventory.Item{item}, f)
			require.Len(t, issues, 1, f)
			assert.Equal(t, SeverityError, issues[0].Severity)
		}
	})

	t.Run("pdf class warns on missing photos", func(t *testing.T) {
		item := completeItem("Table", 450)
		item.Photos = nil
		issues := InspectForFormat([]inventory.Item{item}, FormatProgressive)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
	})

	t.Run("bundle class escalates generic errors to blocking", func(t *testing.T) {
		item := completeItem("TV", 0)
		item.PurchasePrice = nil
		issues := InspectForFormat([]inventory.Item{item}, FormatLibertyMutual)
		require.Len(t, issues, 1)
		assert.Equal(t, SeverityCritical, issues[0].Severity)
		assert.Equal(t, CategoryMissingValue, issues[0].Category)
	})

	t.Run("json class imposes no additional constraints", func(t *testing.T) {
		item := inventory.Item{ID: uuid.New(), Name: "Anything"}
		assert.Empty(t, InspectForFormat([]inventory.Item{item}, FormatUSAA))
		assert.Empty(t, InspectForFormat([]inventory.Item{item}, FormatNationwide))
	})
}

func TestValidateRequirements(t *testing.T) {
	t.Run("passes for complete items", func(t *testing.T) {
		items := []inventory.Item{completeItem("A", 100), completeItem("B", 200)}
		assert.NoError(t, ValidateRequirements(items, FormatGeneric, StandardRequirements()))
	})

	t.Run("aggregates every failed policy into one error", func(t *testing.T) {
		bare := inventory.Item{ID: uuid.New(), Name: "Bare"}
		reqs := StandardRequirements()
		reqs.RequiresReceipts = true
		reqs.RequiresSerialNumbers = true

		err := ValidateRequirements([]inventory.Item{bare}, FormatGeneric, reqs)
		var failed *ValidationFailedError
		require.ErrorAs(t, err, &failed)
		assert.Len(t, failed.Reasons, 3)
	})

	t.Run("minimum value threshold", func(t *testing.T) {
		min := decimal.NewFromInt(50)
		reqs := ValidationRequirements{MinimumItemValue: &min}
		items := []inventory.Item{completeItem("Pen", 5), completeItem("Desk", 300)}

		err := ValidateRequirements(items, FormatGeneric, reqs)
		var failed *ValidationFailedError
		require.ErrorAs(t, err, &failed)
		require.Len(t, failed.Reasons, 1)
		assert.Contains(t, failed.Reasons[0], "below minimum value")
	})

	// Three items, one missing its purchase price, spreadsheet-class
	// insurer: the gate raises with a price-mentioning reason, and the
	// advisory pass reports exactly one missing-value error.
	t.Run("spreadsheet class gates on missing price", func(t *testing.T) {
		unpriced := completeItem("Blender", 0)
		unpriced.PurchasePrice = nil
		items := []inventory.Item{completeItem("A", 100), completeItem("B", 200), unpriced}

		reqs := ValidationRequirements{} // no generic policies enabled
		err := ValidateRequirements(items, FormatStateFarm, reqs)
		var failed *ValidationFailedError
		require.ErrorAs(t, err, &failed)
		require.Len(t, failed.Reasons, 1)
		assert.Contains(t, failed.Reasons[0], "price")

		valueErrors := 0
		for _, issue := range InspectItems(items) {
			if issue.Category == CategoryMissingValue {
				valueErrors++
				assert.Equal(t, SeverityError, issue.Severity)
			}
		}
		assert.Equal(t, 1, valueErrors)

		// The same selection passes the gate for a PDF-class insurer
		assert.NoError(t, ValidateRequirements(items, FormatProgressive, reqs))
	})
}

func TestValidateFileSize(t *testing.T) {
	reqs := StandardRequirements()
	assert.Empty(t, ValidateFileSize(1_000_000, reqs))

	issues := ValidateFileSize(60_000_000, reqs)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, CategoryFileSize, issues[0].Category)
	assert.Contains(t, issues[0].Description, "50MB")
}

func TestCompletenessRatio(t *testing.T) {
	items := 4

	t.Run("no issues is fully complete", func(t *testing.T) {
		assert.Equal(t, 1.0, CompletenessRatio(nil, items))
	})

	t.Run("errors weigh more than advisories", func(t *testing.T) {
		errorIssue := []ValidationIssue{{Severity: SeverityError}}
		warning := []ValidationIssue{{Severity: SeverityWarning}}
		info := []ValidationIssue{{Severity: SeverityInfo}}

		assert.InDelta(t, 0.75, CompletenessRatio(errorIssue, items), 1e-9)
		assert.InDelta(t, 0.875, CompletenessRatio(warning, items), 1e-9)
		assert.InDelta(t, 0.9375, CompletenessRatio(info, items), 1e-9)
	})

	t.Run("clamped at zero", func(t *testing.T) {
		many := make([]ValidationIssue, 10)
		for i := range many {
			many[i] = ValidationIssue{Severity: SeverityCritical}
		}
		assert.Equal(t, 0.0, CompletenessRatio(many, 2))
	})

	t.Run("empty selection scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, CompletenessRatio(nil, 0))
	})
}

func TestGradeForRatio(t *testing.T) {
	tests := []struct {
		ratio float64
		grade CompletenessGrade
	}{
		{0.95, GradeExcellent},
		{0.80, GradeGood},
		{0.60, GradeFair},
		{0.30, GradePoor},
		// Boundary values resolve to the higher band
		{0.9, GradeExcellent},
		{0.75, GradeGood},
		{0.5, GradeFair},
		{0.0, GradePoor},
		{1.0, GradeExcellent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.grade, GradeForRatio(tt.ratio), "ratio %v", tt.ratio)
	}
}
