package constants

// ReviewStatus is the terminal disposition for a validated invoice.
type ReviewStatus string

// Stable values (callers persist and display these exact strings).
const (
	StatusAutoApproved   ReviewStatus = "AUTO_APPROVED"              // skip human review entirely
	StatusApprovedVerify ReviewStatus = "APPROVED_WITH_VERIFICATION" // approved, spot-check recommended
	StatusRequiresReview ReviewStatus = "REQUIRES_REVIEW"            // human must look at it
)

// ReasonCode explains why a ReviewStatus was chosen.
type ReasonCode string

const (
	ReasonMathValidationFailed  ReasonCode = "MATH_VALIDATION_FAILED"
	ReasonMissingCriticalFields ReasonCode = "MISSING_CRITICAL_FIELDS"
	ReasonHighConfidence        ReasonCode = "HIGH_CONFIDENCE_AND_VALIDATED"
	ReasonModerateConfidence    ReasonCode = "MODERATE_CONFIDENCE"
	ReasonLowConfidence         ReasonCode = "LOW_CONFIDENCE"
)

// Severity grades a validation issue.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
)
