package domain

// RiskLevel is the ordinal classification assigned to a detection rule and to
// the findings it produces. Higher levels drive stronger warning/blocking
// behavior in the calling application.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
	RiskCritical
)

// String returns the canonical wire name for the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "LOW"
	case RiskModerate:
		return "MODERATE"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Jurisdiction identifies a regulatory region a detection rule applies to.
type Jurisdiction string

const (
	JurisdictionUS Jurisdiction = "US"
	JurisdictionCA Jurisdiction = "CA"
	JurisdictionEU Jurisdiction = "EU"
	JurisdictionUK Jurisdiction = "UK"
)

// Category identifies the kind of sensitive data a rule detects.
type Category string

const (
	CategoryEmail      Category = "EMAIL"
	CategoryPhone      Category = "PHONE"
	CategorySSN        Category = "SSN"
	CategorySIN        Category = "SIN"
	CategoryCreditCard Category = "CREDIT_CARD"
	CategoryIBAN       Category = "IBAN"
	CategoryNINO       Category = "NINO"
	CategoryIPAddress  Category = "IP_ADDRESS"
	CategoryPersonName Category = "PERSON_NAME"
	CategoryCredential Category = "CREDENTIAL"
)

// SensitivityThreshold selects which rules participate in a scan.
type SensitivityThreshold string

const (
	// ThresholdStrict runs every rule, including LOW-risk heuristics.
	ThresholdStrict SensitivityThreshold = "strict"
	// ThresholdModerate skips LOW-risk rules.
	ThresholdModerate SensitivityThreshold = "moderate"
	// ThresholdRelaxed runs only HIGH and CRITICAL rules.
	ThresholdRelaxed SensitivityThreshold = "relaxed"
)

// MinimumRisk returns the lowest risk level a rule must carry to run at this
// threshold. Unknown thresholds behave as strict so that misconfiguration
// never silently disables detection.
func (t SensitivityThreshold) MinimumRisk() RiskLevel {
	switch t {
	case ThresholdRelaxed:
		return RiskHigh
	case ThresholdModerate:
		return RiskModerate
	default:
		return RiskLow
	}
}

// UserDecision records what the user chose after reviewing scan findings.
type UserDecision string

const (
	DecisionProceed   UserDecision = "proceed"
	DecisionCancel    UserDecision = "cancel"
	DecisionAnonymize UserDecision = "anonymize"
)
