// Package validate checks the arithmetic integrity of an invoice.
//
// In accounting, numbers must reconcile: each line item must satisfy
// quantity × rate = amount, line items must sum to the subtotal, and the
// grand total must equal subtotal + shipping - discount + tax. Discrepancies
// are data, not errors: they are collected as issues on the result and never
// returned as Go errors.
package validate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-trust/constants"
	"github.com/joseph-ayodele/invoice-trust/internal/common"
	"github.com/joseph-ayodele/invoice-trust/internal/invoice"
)

// Issue is one detected discrepancy.
type Issue struct {
	Severity   constants.Severity `json:"severity"`
	Field      string             `json:"field"`
	Message    string             `json:"message"`
	Calculated float64            `json:"calculated"`
	Stated     float64            `json:"stated"`
	Difference float64            `json:"difference"`
}

// ItemCheck is the per-line-item detail row. Confidence grades how far off
// the stated amount is: 0.99 within tolerance, 0.90 under ten cents off,
// 0.70 under a dollar, 0.30 beyond.
type ItemCheck struct {
	Index      int     `json:"index"`
	Name       string  `json:"name"`
	Valid      bool    `json:"valid"`
	Quantity   float64 `json:"quantity"`
	Rate       float64 `json:"rate"`
	Calculated float64 `json:"calculated"`
	Stated     float64 `json:"stated"`
	Difference float64 `json:"difference"`
	Confidence float64 `json:"confidence"`
}

// Result is the full outcome of one validation pass.
type Result struct {
	LineItemsValid bool        `json:"line_items_valid"`
	SubtotalValid  bool        `json:"subtotal_valid"`
	TotalValid     bool        `json:"total_valid"`
	OverallValid   bool        `json:"overall_valid"`
	Items          []ItemCheck `json:"items,omitempty"`
	Issues         []Issue     `json:"errors"`
}

// Validator runs the math checks under a given policy tolerance.
type Validator struct {
	tolerance decimal.Decimal
}

// NewValidator builds a Validator from policy. The tolerance comparison is
// inclusive: a discrepancy of exactly one cent passes under the default
// policy, reflecting real-world rounding.
func NewValidator(pol common.Policy) *Validator {
	return &Validator{tolerance: decimal.New(pol.ToleranceCents, -2)}
}

// Validate runs every math check against a canonical invoice and returns the
// aggregated result. The issue list is always non-nil, empty when fully valid.
func (v *Validator) Validate(inv invoice.CanonicalInvoice) Result {
	res := Result{
		LineItemsValid: true,
		SubtotalValid:  true,
		TotalValid:     true,
		Issues:         make([]Issue, 0),
	}

	v.validateLineItems(inv.LineItems, &res)
	v.validateSubtotal(inv, &res)
	v.validateTotal(inv, &res)

	res.OverallValid = res.LineItemsValid && res.SubtotalValid && res.TotalValid
	return res
}

func (v *Validator) validateLineItems(items []invoice.LineItem, res *Result) {
	if len(items) == 0 {
		res.Issues = append(res.Issues, Issue{
			Severity: constants.SeverityWarning,
			Field:    "line_items",
			Message:  "no line items found in invoice",
		})
		return
	}

	res.Items = make([]ItemCheck, 0, len(items))
	for i, it := range items {
		qty := decimal.NewFromFloat(it.Quantity)
		rate := decimal.NewFromFloat(it.Rate)
		stated := decimal.NewFromFloat(it.Amount)

		calculated := qty.Mul(rate)
		diff := calculated.Sub(stated).Abs()
		valid := v.within(diff)

		check := ItemCheck{
			Index:      i,
			Name:       it.Name,
			Valid:      valid,
			Quantity:   it.Quantity,
			Rate:       it.Rate,
			Calculated: round2(calculated),
			Stated:     it.Amount,
			Difference: round2(diff),
			Confidence: itemConfidence(valid, diff),
		}
		res.Items = append(res.Items, check)

		if !valid {
			res.LineItemsValid = false
			res.Issues = append(res.Issues, Issue{
				Severity: constants.SeverityCritical,
				Field:    fmt.Sprintf("line_item_%d", i),
				Message: fmt.Sprintf("line item %q: %v × %v = %.2f, but invoice shows %.2f",
					it.Name, it.Quantity, it.Rate, round2(calculated), it.Amount),
				Calculated: round2(calculated),
				Stated:     it.Amount,
				Difference: round2(diff),
			})
		}
	}
}

// validateSubtotal compares the sum of stated line amounts to the stated
// subtotal. With no line items there is nothing to sum, so the check is
// skipped rather than failed: "no data" must not read as "bad data" (the
// missing-critical-fields gate catches the empty case instead).
func (v *Validator) validateSubtotal(inv invoice.CanonicalInvoice, res *Result) {
	if len(inv.LineItems) == 0 {
		return
	}

	sum := decimal.Zero
	for _, it := range inv.LineItems {
		sum = sum.Add(decimal.NewFromFloat(it.Amount))
	}

	stated := decimal.NewFromFloat(inv.Subtotal)
	diff := sum.Sub(stated).Abs()
	if v.within(diff) {
		return
	}

	res.SubtotalValid = false
	res.Issues = append(res.Issues, Issue{
		Severity: constants.SeverityCritical,
		Field:    "subtotal",
		Message: fmt.Sprintf("subtotal mismatch: line items sum to %.2f, but invoice shows %.2f",
			round2(sum), inv.Subtotal),
		Calculated: round2(sum),
		Stated:     inv.Subtotal,
		Difference: round2(diff),
	})
}

// validateTotal checks total = subtotal + shipping - discount + tax. It uses
// the stated subtotal, not the recomputed one, so a subtotal error and a
// total error surface as two independently diagnosable issues.
func (v *Validator) validateTotal(inv invoice.CanonicalInvoice, res *Result) {
	calculated := decimal.NewFromFloat(inv.Subtotal).
		Add(decimal.NewFromFloat(inv.Shipping)).
		Sub(decimal.NewFromFloat(inv.Discount)).
		Add(decimal.NewFromFloat(inv.Tax))

	stated := decimal.NewFromFloat(inv.Total)
	diff := calculated.Sub(stated).Abs()
	if v.within(diff) {
		return
	}

	res.TotalValid = false
	res.Issues = append(res.Issues, Issue{
		Severity: constants.SeverityCritical,
		Field:    "total",
		Message: fmt.Sprintf("total mismatch: %.2f + %.2f - %.2f + %.2f = %.2f, but invoice shows %.2f",
			inv.Subtotal, inv.Shipping, inv.Discount, inv.Tax, round2(calculated), inv.Total),
		Calculated: round2(calculated),
		Stated:     inv.Total,
		Difference: round2(diff),
	})
}

func (v *Validator) within(diff decimal.Decimal) bool {
	return diff.Cmp(v.tolerance) <= 0
}

var (
	tenCents  = decimal.New(10, -2)
	oneDollar = decimal.New(1, 0)
)

func itemConfidence(valid bool, diff decimal.Decimal) float64 {
	switch {
	case valid:
		return 0.99
	case diff.LessThan(tenCents):
		return 0.90
	case diff.LessThan(oneDollar):
		return 0.70
	default:
		return 0.30
	}
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
