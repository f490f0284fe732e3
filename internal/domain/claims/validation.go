package claims

import (
	"fmt"

	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationSeverity ranks how badly an issue blocks submission
type ValidationSeverity string

const (
	SeverityCritical ValidationSeverity = "CRITICAL"
	SeverityError    ValidationSeverity = "ERROR"
	SeverityWarning  ValidationSeverity = "WARNING"
	SeverityInfo     ValidationSeverity = "INFO"
)

// IssueCategory tags what kind of data gap an issue reports
type IssueCategory string

const (
	CategoryMissingPhoto   IssueCategory = "MISSING_PHOTO"
	CategoryMissingValue   IssueCategory = "MISSING_VALUE"
	CategoryMissingSerial  IssueCategory = "MISSING_SERIAL"
	CategoryMissingDate    IssueCategory = "MISSING_DATE"
	CategoryFormatSpecific IssueCategory = "FORMAT_SPECIFIC"
	CategoryFileSize       IssueCategory = "FILE_SIZE"
)

// ValidationIssue is a single advisory finding on a claim item. Issues are
// transient: the inspection pass regenerates them in full each time.
type ValidationIssue struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
	Severity    ValidationSeverity
	Category    IssueCategory
	Description string
}

func newIssue(item *inventory.Item, severity ValidationSeverity, category IssueCategory, description string) ValidationIssue {
	return ValidationIssue{
		ID:          uuid.New(),
		ItemID:      item.ID,
		ItemName:    item.Name,
		Severity:    severity,
		Category:    category,
		Description: description,
	}
}

// HighValueSerialThreshold is the purchase price above which a missing
// serial number is flagged.
var HighValueSerialThreshold = decimal.NewFromInt(500)

// ValidationRequirements configures the hard pre-submission gate
type ValidationRequirements struct {
	RequiresPhotos        bool
	RequiresReceipts      bool
	RequiresSerialNumbers bool
	RequiresPolicyInfo    bool
	RequiresIncidentDate  bool
	MinimumItemValue      *decimal.Decimal
	MaxFileSize           int64 // bytes
	AllowedContentTypes   []string
}

// StandardRequirements is the default gate configuration
func StandardRequirements() ValidationRequirements {
	return ValidationRequirements{
		RequiresPhotos:        true,
		RequiresReceipts:      false,
		RequiresSerialNumbers: false,
		RequiresPolicyInfo:    true,
		RequiresIncidentDate:  true,
		MaxFileSize:           50_000_000, // 50MB
		AllowedContentTypes:   []string{"application/pdf", "image/jpeg", "image/png", "text/csv", "application/xml", "application/json", "application/zip"},
	}
}

// InspectItems evaluates the general per-item completeness rules and
// returns the advisory issues. Deterministic: an unchanged item set always
// yields the same issue list (ignoring generated issue IDs).
func InspectItems(items []inventory.Item) []ValidationIssue {
	issues := make([]ValidationIssue, 0)

	for i := range items {
		item := &items[i]

		if !item.HasPhotos() {
			issues = append(issues, newIssue(item, SeverityWarning, CategoryMissingPhoto,
				"No photos available for insurance documentation"))
		}

		if item.PurchasePrice == nil {
			issues = append(issues, newIssue(item, SeverityError, CategoryMissingValue,
				"Purchase price required for claim valuation"))
		}

		if item.PriceOrZero().GreaterThan(HighValueSerialThreshold) && !item.HasSerialNumber() {
			issues = append(issues, newIssue(item, SeverityWarning, CategoryMissingSerial,
				"Serial number recommended for high-value items"))
		}

		if item.PurchaseDate == nil {
			issues = append(issues, newIssue(item, SeverityInfo, CategoryMissingDate,
				"Purchase date helps establish item timeline"))
		}
	}

	return issues
}

// InspectForFormat evaluates insurer-class specific rules. Rules key off
// the strategy class, not the insurer name, so a new carrier inherits its
// class rules automatically.
func InspectForFormat(items []inventory.Item, format InsurerFormat) []ValidationIssue {
	issues := make([]ValidationIssue, 0)

	switch format.Class() {
	case ClassXML:
		// Structured XML works best with fully categorized items
		for i := range items {
			if !items[i].HasCategory() {
				issues = append(issues, newIssue(&items[i], SeverityWarning, CategoryFormatSpecific,
					fmt.Sprintf("%s format works best with item categories", format.DisplayName())))
			}
		}

	case ClassSpreadsheet:
		// The spreadsheet is the sole source of truth; no narrative fallback
		for i := range items {
			if items[i].PurchasePrice == nil {
				issues = append(issues, newIssue(&items[i], SeverityError, CategoryFormatSpecific,
					"Spreadsheet format requires purchase price for all items"))
			}
		}

	case ClassPDF:
		// Narrative documents benefit from visuals but are not blocked
		for i := range items {
			if !items[i].HasPhotos() {
				issues = append(issues, newIssue(&items[i], SeverityWarning, CategoryFormatSpecific,
					"PDF format works best with item photos"))
			}
		}

	case ClassBundle:
		// Comprehensive packages need complete data: every generic error
		// becomes blocking
		for _, issue := range InspectItems(items) {
			if issue.Severity == SeverityError {
				issue.Severity = SeverityCritical
				issues = append(issues, issue)
			}
		}

	case ClassJSON:
		// JSON is flexible; no additional constraints
	}

	return issues
}

// ValidateRequirements is the hard pre-submission gate. It aggregates every
// failed policy into plain-string reasons and returns a single
// ValidationFailedError when any check fails. Advisory inspection
// (InspectItems / InspectForFormat) is separate and never blocks here.
func ValidateRequirements(items []inventory.Item, format InsurerFormat, reqs ValidationRequirements) error {
	var reasons []string

	if reqs.RequiresPhotos {
		missing := 0
		for i := range items {
			if !items[i].HasPhotos() {
				missing++
			}
		}
		if missing > 0 {
			reasons = append(reasons, fmt.Sprintf("%d items missing photos", missing))
		}
	}

	if reqs.RequiresReceipts {
		missing := 0
		for i := range items {
			if !items[i].HasReceipts() {
				missing++
			}
		}
		if missing > 0 {
			reasons = append(reasons, fmt.Sprintf("%d items missing receipts", missing))
		}
	}

	if reqs.RequiresSerialNumbers {
		missing := 0
		for i := range items {
			if !items[i].HasSerialNumber() {
				missing++
			}
		}
		if missing > 0 {
			reasons = append(reasons, fmt.Sprintf("%d items missing serial numbers", missing))
		}
	}

	if reqs.MinimumItemValue != nil {
		below := 0
		for i := range items {
			if items[i].PriceOrZero().LessThan(*reqs.MinimumItemValue) {
				below++
			}
		}
		if below > 0 {
			reasons = append(reasons, fmt.Sprintf("%d items below minimum value threshold", below))
		}
	}

	// Spreadsheet-class insurers treat the export as the sole source of
	// truth, so an unpriced item is disqualifying, not just advisory.
	if format.Class() == ClassSpreadsheet {
		unpriced := 0
		for i := range items {
			if items[i].PurchasePrice == nil {
				unpriced++
			}
		}
		if unpriced > 0 {
			reasons = append(reasons, fmt.Sprintf("%d items missing purchase price required by spreadsheet format", unpriced))
		}
	}

	if len(reasons) > 0 {
		return NewValidationFailedError(reasons)
	}
	return nil
}

// ValidateFileSize checks the produced artifact against the size limit
func ValidateFileSize(byteSize int64, reqs ValidationRequirements) []ValidationIssue {
	if reqs.MaxFileSize > 0 && byteSize > reqs.MaxFileSize {
		return []ValidationIssue{{
			ID:          uuid.New(),
			ItemName:    "Export File",
			Severity:    SeverityError,
			Category:    CategoryFileSize,
			Description: fmt.Sprintf("Export file exceeds maximum size limit (%dMB)", reqs.MaxFileSize/1_000_000),
		}}
	}
	return nil
}

// severityWeight returns the contribution of one issue to the weighted
// issue count. Critical and error issues weigh more than advisories.
func severityWeight(s ValidationSeverity) float64 {
	switch s {
	case SeverityCritical, SeverityError:
		return 1.0
	case SeverityWarning:
		return 0.5
	case SeverityInfo:
		return 0.25
	}
	return 0
}

// CompletenessRatio computes 1 - weightedIssueCount/itemCount, clamped to
// [0, 1]. An empty selection scores zero.
func CompletenessRatio(issues []ValidationIssue, itemCount int) float64 {
	if itemCount == 0 {
		return 0
	}
	weighted := 0.0
	for _, issue := range issues {
		weighted += severityWeight(issue.Severity)
	}
	ratio := 1 - weighted/float64(itemCount)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// CompletenessGrade is the banded label for a completeness ratio
type CompletenessGrade string

const (
	GradeExcellent CompletenessGrade = "Excellent"
	GradeGood      CompletenessGrade = "Good"
	GradeFair      CompletenessGrade = "Fair"
	GradePoor      CompletenessGrade = "Poor"
)

// GradeForRatio bands a completeness ratio. Boundary values resolve to the
// higher band: exactly 0.9 is Excellent, 0.75 Good, 0.5 Fair.
func GradeForRatio(ratio float64) CompletenessGrade {
	switch {
	case ratio >= 0.9:
		return GradeExcellent
	case ratio >= 0.75:
		return GradeGood
	case ratio >= 0.5:
		return GradeFair
	default:
		return GradePoor
	}
}
