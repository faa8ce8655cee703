// Package invoice defines the canonical invoice model and the normalizer
// that builds it from raw extraction records.
package invoice

import (
	"strconv"
	"strings"
)

// Record is the raw, loosely-typed record produced by the OCR/extraction
// collaborator. Fields may be missing, null, or currency-formatted strings;
// nothing is guaranteed.
type Record map[string]any

// Get returns the first present, non-nil value among keys, checking the
// top-level record first and then the nested financial_summary object some
// extractors emit.
func (r Record) Get(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	if fs, ok := r["financial_summary"].(map[string]any); ok {
		for _, k := range keys {
			if v, ok := fs[k]; ok && v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

// String returns the first non-empty string-like value among keys.
func (r Record) String(keys ...string) string {
	for _, k := range keys {
		v, ok := r.Get(k)
		if !ok {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

// LineItems returns the raw line item objects, tolerating a missing or null
// list. Non-object entries are skipped.
func (r Record) LineItems() []map[string]any {
	raw, ok := r["line_items"].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

// LineItem is one row of an invoice. Quantity and rate are clamped to be
// non-negative by the normalizer; a clamped value fails the math check
// downstream instead of being silently negated.
type LineItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// CanonicalInvoice is the normalized invoice: guaranteed fields, numeric
// types, all amounts defaulting to 0.0 when absent. Built once per document
// and never mutated afterwards.
type CanonicalInvoice struct {
	InvoiceNumber string     `json:"invoice_number"`
	Date          string     `json:"date"`
	Vendor        string     `json:"vendor"`
	Customer      string     `json:"customer"`
	LineItems     []LineItem `json:"line_items"`
	Subtotal      float64    `json:"subtotal"`
	Shipping      float64    `json:"shipping"`
	Discount      float64    `json:"discount"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
}
