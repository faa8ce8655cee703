// Package engine wires the full per-document flow: decode, normalize,
// validate, score, decide. One call in, one annotated result out; no state
// survives between calls, so the same document always yields the same result
// and any number of documents can be processed concurrently.
package engine

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/invoice-trust/constants"
	"github.com/joseph-ayodele/invoice-trust/internal/common"
	"github.com/joseph-ayodele/invoice-trust/internal/invoice"
	"github.com/joseph-ayodele/invoice-trust/internal/score"
	"github.com/joseph-ayodele/invoice-trust/internal/trust"
	"github.com/joseph-ayodele/invoice-trust/internal/validate"
)

// Result is the annotated outcome for one invoice, shaped for the
// presentation/aggregation layer.
type Result struct {
	CanonicalInvoice invoice.CanonicalInvoice `json:"canonical_invoice"`
	MathValidation   validate.Result          `json:"math_validation"`
	Confidence       trust.Breakdown          `json:"confidence"`
	ReviewStatus     constants.ReviewStatus   `json:"review_status"`
	ReasonCode       constants.ReasonCode     `json:"reason_code"`
	AutoApprove      bool                     `json:"auto_approve"`
}

// Processor coordinates normalization, math validation, confidence scoring,
// and the trust decision for one document at a time.
type Processor struct {
	logger    *slog.Logger
	validator *validate.Validator
	decider   *trust.Engine
}

func NewProcessor(logger *slog.Logger, pol common.Policy) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:    logger,
		validator: validate.NewValidator(pol),
		decider:   trust.NewEngine(pol),
	}
}

// Process decodes a raw extraction document and runs the full validation and
// scoring pass. The only error it returns is the structurally-unusable-input
// class; an invoice full of bad data comes back as a Result with
// OverallValid=false, never as an error.
func (p *Processor) Process(ctx context.Context, raw []byte) (*Result, error) {
	rec, err := invoice.DecodeRecord(raw)
	if err != nil {
		p.logger.Error("engine.decode.failed", "err", err)
		return nil, err
	}
	return p.ProcessRecord(ctx, rec), nil
}

// ProcessRecord runs the pass on an already-decoded record.
func (p *Processor) ProcessRecord(_ context.Context, rec invoice.Record) *Result {
	inv := invoice.Normalize(rec)

	// Math validation and extraction scoring are independent signals over
	// the same normalized invoice.
	mathRes := p.validator.Validate(inv)
	extraction := score.ScoreExtraction(inv, rec)
	validation := score.ScoreValidation(mathRes)

	breakdown := p.decider.Fuse(extraction.Overall, validation)
	decision := p.decider.Decide(breakdown, trust.HasCriticalFields(inv), mathRes)

	p.logger.Debug("engine.processed",
		"invoice_number", inv.InvoiceNumber,
		"overall_valid", mathRes.OverallValid,
		"issues", len(mathRes.Issues),
		"extraction_confidence", breakdown.Extraction,
		"validation_confidence", breakdown.Validation,
		"overall_confidence", breakdown.Overall,
		"status", decision.Status,
	)

	return &Result{
		CanonicalInvoice: inv,
		MathValidation:   mathRes,
		Confidence:       breakdown.Rounded(),
		ReviewStatus:     decision.Status,
		ReasonCode:       decision.Reason,
		AutoApprove:      decision.AutoApprove,
	}
}
