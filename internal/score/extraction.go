// Package score turns an extraction and its validation outcome into [0,1]
// confidence values. Extraction confidence measures how well the OCR/LLM step
// read the document; validation confidence measures whether the numbers
// reconcile. The two are deliberately independent: a perfectly-typed invoice
// with a math error still scores well here.
package score

import (
	"strings"
	"time"
	"unicode"

	"github.com/joseph-ayodele/invoice-trust/internal/currency"
	"github.com/joseph-ayodele/invoice-trust/internal/invoice"
)

// Factor weights for extraction confidence.
const (
	weightFieldPresence   = 0.30
	weightFieldQuality    = 0.25
	weightCompleteness    = 0.20
	weightDataConsistency = 0.25
)

// Extraction is the factor breakdown behind an extraction confidence score.
type Extraction struct {
	FieldPresence   float64 `json:"field_presence"`
	FieldQuality    float64 `json:"field_quality"`
	Completeness    float64 `json:"completeness"`
	DataConsistency float64 `json:"data_consistency"`
	Overall         float64 `json:"overall"`
}

// ScoreExtraction scores extraction quality from the canonical invoice and
// the raw record it came from. The raw record matters for completeness and
// consistency: after normalization every amount looks numeric, so "was this
// field actually populated" can only be judged against the raw input.
func ScoreExtraction(inv invoice.CanonicalInvoice, rec invoice.Record) Extraction {
	e := Extraction{
		FieldPresence:   fieldPresence(inv),
		FieldQuality:    fieldQuality(inv),
		Completeness:    completeness(inv, rec),
		DataConsistency: dataConsistency(rec),
	}
	e.Overall = clamp01(e.FieldPresence*weightFieldPresence +
		e.FieldQuality*weightFieldQuality +
		e.Completeness*weightCompleteness +
		e.DataConsistency*weightDataConsistency)
	return e
}

// fieldPresence: fraction of {invoice_number, date, vendor, total} present.
func fieldPresence(inv invoice.CanonicalInvoice) float64 {
	present := 0
	if inv.InvoiceNumber != "" {
		present++
	}
	if inv.Date != "" {
		present++
	}
	if inv.Vendor != "" {
		present++
	}
	if inv.Total > 0 {
		present++
	}
	return float64(present) / 4
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// fieldQuality: plausibility of what was extracted. Three checks: the date
// parses as a real date, the vendor reads as text rather than a stray number,
// and the total is positive.
func fieldQuality(inv invoice.CanonicalInvoice) float64 {
	passed := 0
	if dateParses(inv.Date) {
		passed++
	}
	if looksLikeName(inv.Vendor) {
		passed++
	}
	if inv.Total > 0 {
		passed++
	}
	return float64(passed) / 3
}

func dateParses(s string) bool {
	if s == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func looksLikeName(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// completeness: fraction of optional fields present (customer, shipping,
// discount, tax, line-item descriptions). Rewards richer extractions; an
// invoice genuinely lacking these only loses this capped 20% slice.
func completeness(inv invoice.CanonicalInvoice, rec invoice.Record) float64 {
	present := 0
	if inv.Customer != "" {
		present++
	}
	for _, key := range []string{"shipping", "tax"} {
		if populated(rec, key) {
			present++
		}
	}
	if populated(rec, "discount") || populated(rec, "discount_amount") {
		present++
	}
	if anyDescription(inv.LineItems) {
		present++
	}
	return float64(present) / 5
}

func populated(rec invoice.Record, key string) bool {
	v, ok := rec.Get(key)
	if !ok {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func anyDescription(items []invoice.LineItem) bool {
	for _, it := range items {
		if it.Description != "" {
			return true
		}
	}
	return false
}

// dataConsistency: fraction of raw line items carrying all of name, quantity,
// rate, and amount as populated numeric values. No line items scores zero.
func dataConsistency(rec invoice.Record) float64 {
	items := rec.LineItems()
	if len(items) == 0 {
		return 0
	}
	valid := 0
	for _, m := range items {
		r := invoice.Record(m)
		if r.String("item_name", "item") == "" {
			continue
		}
		if currency.IsNumeric(m["quantity"]) && currency.IsNumeric(m["rate"]) && currency.IsNumeric(m["amount"]) {
			valid++
		}
	}
	return float64(valid) / float64(len(items))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
