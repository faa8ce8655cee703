// Package trust fuses extraction and validation confidence and applies
// accounting policy to decide whether an invoice may skip human review.
package trust

import (
	"math"

	"github.com/joseph-ayodele/invoice-trust/constants"
	"github.com/joseph-ayodele/invoice-trust/internal/common"
	"github.com/joseph-ayodele/invoice-trust/internal/invoice"
	"github.com/joseph-ayodele/invoice-trust/internal/validate"
)

// Breakdown carries the two confidence signals and their weighted fusion.
type Breakdown struct {
	Extraction float64 `json:"extraction"`
	Validation float64 `json:"validation"`
	Overall    float64 `json:"overall"`
}

// Decision is the engine's verdict for one invoice.
type Decision struct {
	Status      constants.ReviewStatus `json:"status"`
	Reason      constants.ReasonCode   `json:"reason_code"`
	Severity    constants.Severity     `json:"severity,omitempty"`
	AutoApprove bool                   `json:"auto_approve"`
	Message     string                 `json:"message"`
}

// Engine applies the decision policy. It holds no per-invoice state; one
// Engine serves any number of concurrent invocations.
type Engine struct {
	pol common.Policy
}

func NewEngine(pol common.Policy) *Engine {
	return &Engine{pol: pol}
}

// Fuse combines the two confidence signals with the policy weights
// (validation weighted higher: arithmetic correctness beats OCR polish).
// Values stay unrounded here; thresholds compare against the exact fusion
// and rounding happens only at serialization time.
func (e *Engine) Fuse(extraction, validation float64) Breakdown {
	return Breakdown{
		Extraction: extraction,
		Validation: validation,
		Overall:    validation*e.pol.ValidationWeight + extraction*e.pol.ExtractionWeight,
	}
}

// Rounded returns a copy with each value rounded to two decimals for output.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Extraction: round2(b.Extraction),
		Validation: round2(b.Validation),
		Overall:    round2(b.Overall),
	}
}

// Decide applies the ordered decision rules. Order is the point: a math
// failure forces review before any confidence value is even looked at, so a
// 99%-confident invoice with one critical math issue can never be
// auto-approved.
func (e *Engine) Decide(b Breakdown, hasCriticalFields bool, res validate.Result) Decision {
	if !res.OverallValid {
		return Decision{
			Status:      constants.StatusRequiresReview,
			Reason:      constants.ReasonMathValidationFailed,
			Severity:    constants.SeverityCritical,
			AutoApprove: false,
			Message:     "mathematical discrepancies detected; manual verification required",
		}
	}

	if !hasCriticalFields {
		return Decision{
			Status:      constants.StatusRequiresReview,
			Reason:      constants.ReasonMissingCriticalFields,
			Severity:    constants.SeverityCritical,
			AutoApprove: false,
			Message:     "required fields missing; manual entry required",
		}
	}

	if b.Overall >= e.pol.AutoApproveThreshold {
		return Decision{
			Status:      constants.StatusAutoApproved,
			Reason:      constants.ReasonHighConfidence,
			AutoApprove: true,
			Message:     "all validations passed; approved automatically",
		}
	}

	if b.Overall >= e.pol.VerifyThreshold {
		return Decision{
			Status:      constants.StatusApprovedVerify,
			Reason:      constants.ReasonModerateConfidence,
			AutoApprove: true,
			Message:     "math validated with moderate confidence; spot-check recommended",
		}
	}

	return Decision{
		Status:      constants.StatusRequiresReview,
		Reason:      constants.ReasonLowConfidence,
		AutoApprove: false,
		Message:     "confidence below threshold; manual review required",
	}
}

// HasCriticalFields reports whether the minimal field set required for any
// automation decision is present: invoice number, date, and a total.
func HasCriticalFields(inv invoice.CanonicalInvoice) bool {
	return inv.InvoiceNumber != "" && inv.Date != "" && inv.Total != 0
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
