package claims

import "fmt"

// InsurerFormat identifies the insurer-specific export format for a claim.
// The set is closed: every format maps to exactly one StrategyClass, and
// adding an insurer means adding a table entry below.
type InsurerFormat string

const (
	FormatACORD         InsurerFormat = "ACORD"
	FormatAllstate      InsurerFormat = "ALLSTATE"
	FormatStateFarm     InsurerFormat = "STATE_FARM"
	FormatGEICO         InsurerFormat = "GEICO"
	FormatProgressive   InsurerFormat = "PROGRESSIVE"
	FormatFarmers       InsurerFormat = "FARMERS"
	FormatLibertyMutual InsurerFormat = "LIBERTY_MUTUAL"
	FormatTravelers     InsurerFormat = "TRAVELERS"
	FormatNationwide    InsurerFormat = "NATIONWIDE"
	FormatUSAA          InsurerFormat = "USAA"
	FormatGeneric       InsurerFormat = "GENERIC"
)

// AllFormats lists every supported insurer format
var AllFormats = []InsurerFormat{
	FormatACORD,
	FormatAllstate,
	FormatStateFarm,
	FormatGEICO,
	FormatProgressive,
	FormatFarmers,
	FormatLibertyMutual,
	FormatTravelers,
	FormatNationwide,
	FormatUSAA,
	FormatGeneric,
}

// IsValid checks if the format is a known InsurerFormat
func (f InsurerFormat) IsValid() bool {
	for _, known := range AllFormats {
		if f == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the format
func (f InsurerFormat) String() string {
	return string(f)
}

// DisplayName returns the insurer-facing name of the format
func (f InsurerFormat) DisplayName() string {
	switch f {
	case FormatACORD:
		return "ACORD Standard"
	case FormatAllstate:
		return "Allstate"
	case FormatStateFarm:
		return "State Farm"
	case FormatGEICO:
		return "GEICO"
	case FormatProgressive:
		return "Progressive"
	case FormatFarmers:
		return "Farmers"
	case FormatLibertyMutual:
		return "Liberty Mutual"
	case FormatTravelers:
		return "Travelers"
	case FormatNationwide:
		return "Nationwide"
	case FormatUSAA:
		return "USAA"
	case FormatGeneric:
		return "Generic Form"
	}
	return string(f)
}

// StrategyClass is one of the five export strategy families.
// Every InsurerFormat maps to exactly one class.
type StrategyClass string

const (
	ClassXML         StrategyClass = "XML"
	ClassSpreadsheet StrategyClass = "SPREADSHEET"
	ClassPDF         StrategyClass = "PDF"
	ClassBundle      StrategyClass = "BUNDLE"
	ClassJSON        StrategyClass = "JSON"
)

// Class returns the export strategy class for the format.
// The switch is exhaustive over AllFormats; a new format without a
// class here is a programming error surfaced by TestFormatDispatchTotal.
func (f InsurerFormat) Class() StrategyClass {
	switch f {
	case FormatACORD:
		return ClassXML
	case FormatAllstate, FormatStateFarm, FormatGEICO:
		return ClassSpreadsheet
	case FormatProgressive, FormatFarmers, FormatGeneric:
		return ClassPDF
	case FormatLibertyMutual, FormatTravelers:
		return ClassBundle
	case FormatNationwide, FormatUSAA:
		return ClassJSON
	}
	return ""
}

// FileExtension returns the artifact file extension for the format
func (f InsurerFormat) FileExtension() string {
	switch f.Class() {
	case ClassXML:
		return "xml"
	case ClassSpreadsheet:
		return "csv"
	case ClassPDF:
		return "pdf"
	case ClassBundle:
		return "zip"
	case ClassJSON:
		return "json"
	}
	return ""
}

// SubmissionMethods returns the delivery channels the insurer accepts
func (f InsurerFormat) SubmissionMethods() []SubmissionMethod {
	switch f {
	case FormatACORD:
		return []SubmissionMethod{MethodEmail, MethodOnlinePortal, MethodCloudUpload}
	case FormatAllstate:
		return []SubmissionMethod{MethodMobileApp, MethodOnlinePortal, MethodEmail}
	case FormatStateFarm:
		return []SubmissionMethod{MethodMobileApp, MethodOnlinePortal, MethodEmail, MethodPhysicalMail}
	case FormatGEICO:
		return []SubmissionMethod{MethodMobileApp, MethodOnlinePortal, MethodEmail}
	case FormatProgressive:
		return []SubmissionMethod{MethodMobileApp, MethodOnlinePortal, MethodEmail, MethodFax}
	case FormatFarmers:
		return []SubmissionMethod{MethodOnlinePortal, MethodEmail, MethodPhysicalMail, MethodInPerson}
	case FormatLibertyMutual:
		return []SubmissionMethod{MethodOnlinePortal, MethodEmail, MethodCloudUpload}
	case FormatTravelers:
		return []SubmissionMethod{MethodOnlinePortal, MethodEmail, MethodPhysicalMail}
	case FormatNationwide:
		return []SubmissionMethod{MethodMobileApp, MethodOnlinePortal, MethodEmail}
	case FormatUSAA:
		return []SubmissionMethod{MethodMobileApp, MethodOnlinePortal, MethodEmail, MethodCloudUpload}
	case FormatGeneric:
		return AllSubmissionMethods
	}
	return nil
}

// AllowsMethod reports whether the insurer accepts the given channel
func (f InsurerFormat) AllowsMethod(m SubmissionMethod) bool {
	for _, allowed := range f.SubmissionMethods() {
		if allowed == m {
			return true
		}
	}
	return false
}

// SubmissionMethod is the channel a claim is delivered through
type SubmissionMethod string

const (
	MethodEmail        SubmissionMethod = "EMAIL"
	MethodOnlinePortal SubmissionMethod = "ONLINE_PORTAL"
	MethodMobileApp    SubmissionMethod = "MOBILE_APP"
	MethodCloudUpload  SubmissionMethod = "CLOUD_UPLOAD"
	MethodPhysicalMail SubmissionMethod = "PHYSICAL_MAIL"
	MethodFax          SubmissionMethod = "FAX"
	MethodInPerson     SubmissionMethod = "IN_PERSON"
)

// AllSubmissionMethods lists every submission method
var AllSubmissionMethods = []SubmissionMethod{
	MethodEmail,
	MethodOnlinePortal,
	MethodMobileApp,
	MethodCloudUpload,
	MethodPhysicalMail,
	MethodFax,
	MethodInPerson,
}

// IsValid checks if the method is a known SubmissionMethod
func (m SubmissionMethod) IsValid() bool {
	for _, known := range AllSubmissionMethods {
		if m == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the method
func (m SubmissionMethod) String() string {
	return string(m)
}

// RequiresManualSubmission reports whether delivery happens outside the
// system. Manual methods only ever reach PREPARING here; the user carries
// the artifact to the insurer themselves.
func (m SubmissionMethod) RequiresManualSubmission() bool {
	switch m {
	case MethodEmail, MethodCloudUpload:
		return false
	default:
		return true
	}
}

// ClaimType categorizes the insured loss
type ClaimType string

const (
	ClaimTypeFire       ClaimType = "FIRE"
	ClaimTypeFlood      ClaimType = "FLOOD"
	ClaimTypeTheft      ClaimType = "THEFT"
	ClaimTypeVandalism  ClaimType = "VANDALISM"
	ClaimTypeStorm      ClaimType = "STORM"
	ClaimTypeEarthquake ClaimType = "EARTHQUAKE"
	ClaimTypeLiability  ClaimType = "LIABILITY"
	ClaimTypeOther      ClaimType = "OTHER"
)

// AllClaimTypes lists every claim type
var AllClaimTypes = []ClaimType{
	ClaimTypeFire,
	ClaimTypeFlood,
	ClaimTypeTheft,
	ClaimTypeVandalism,
	ClaimTypeStorm,
	ClaimTypeEarthquake,
	ClaimTypeLiability,
	ClaimTypeOther,
}

// IsValid checks if the claim type is known
func (t ClaimType) IsValid() bool {
	for _, known := range AllClaimTypes {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the claim type
func (t ClaimType) String() string {
	return string(t)
}

// Icon returns the display icon name for the claim type
func (t ClaimType) Icon() string {
	switch t {
	case ClaimTypeFire:
		return "flame"
	case ClaimTypeFlood:
		return "drop"
	case ClaimTypeTheft:
		return "lock-open"
	case ClaimTypeVandalism:
		return "alert-triangle"
	case ClaimTypeStorm:
		return "cloud-bolt"
	case ClaimTypeEarthquake:
		return "activity"
	case ClaimTypeLiability:
		return "users"
	case ClaimTypeOther:
		return "help-circle"
	}
	return "help-circle"
}

// ValidateMethodTables cross-checks the per-format submission method table
// against the manual-submission flag. The two tables are maintained by hand;
// this runs once at startup and fails fast on drift.
func ValidateMethodTables() error {
	for _, f := range AllFormats {
		methods := f.SubmissionMethods()
		if len(methods) == 0 {
			return fmt.Errorf("insurer format %s allows no submission methods", f)
		}
		if f.Class() == "" {
			return fmt.Errorf("insurer format %s maps to no export strategy class", f)
		}
		if f.FileExtension() == "" {
			return fmt.Errorf("insurer format %s has no file extension", f)
		}
	}
	for _, m := range AllSubmissionMethods {
		automated := m == MethodEmail || m == MethodCloudUpload
		if automated == m.RequiresManualSubmission() {
			return fmt.Errorf("submission method %s has inconsistent manual-submission flag", m)
		}
	}
	return nil
}
