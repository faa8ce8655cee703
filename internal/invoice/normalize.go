package invoice

import (
	"strings"

	"github.com/joseph-ayodele/invoice-trust/internal/currency"
	"github.com/joseph-ayodele/invoice-trust/internal/entities"
)

// Normalize converts a raw extraction record into a CanonicalInvoice. It is a
// pure transformation: no field is ever rejected, missing or unparseable
// amounts become 0.0, and a record with zero line items and zero total still
// normalizes (the validators and the decision engine flag it, not us).
//
// Alias resolution, first non-empty wins:
//
//	vendor:   vendor | vendor_name
//	discount: discount | discount_amount
//	total:    total | grand_total | balance_due | total_amount
//	item:     item_name | item
func Normalize(rec Record) CanonicalInvoice {
	inv := CanonicalInvoice{
		InvoiceNumber: rec.String("invoice_number"),
		Date:          rec.String("date"),
		Vendor:        rec.String("vendor", "vendor_name"),
		Customer:      rec.String("customer"),
		LineItems:     normalizeItems(rec.LineItems()),
		Subtotal:      amount(rec, "subtotal"),
		Shipping:      amount(rec, "shipping"),
		Discount:      discountAmount(rec),
		Tax:           amount(rec, "tax"),
		Total:         amount(rec, "total", "grand_total", "balance_due", "total_amount"),
	}

	// Extractors sometimes miss the date field while the OCR text plainly
	// contains one. Recover it from raw_text when available.
	if inv.Date == "" {
		if txt := rec.String("raw_text"); txt != "" {
			if d, ok := entities.FirstDate(txt); ok {
				inv.Date = d
			}
		}
	}

	return inv
}

func normalizeItems(raw []map[string]any) []LineItem {
	items := make([]LineItem, 0, len(raw))
	for _, m := range raw {
		r := Record(m)
		it := LineItem{
			Name:        r.String("item_name", "item"),
			Description: r.String("description"),
			Quantity:    clampNonNegative(currency.Parse(m["quantity"])),
			Rate:        clampNonNegative(currency.Parse(m["rate"])),
			Amount:      currency.Parse(m["amount"]),
		}
		items = append(items, it)
	}
	return items
}

func amount(rec Record, keys ...string) float64 {
	for _, k := range keys {
		v, ok := rec.Get(k)
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return currency.Parse(v)
	}
	return 0
}

// discountAmount resolves the flat discount amount. A discount stated only as
// a percentage is treated as absent: this engine never computes percentage
// discounts, and the resulting total mismatch flags the invoice downstream.
func discountAmount(rec Record) float64 {
	for _, k := range []string{"discount", "discount_amount"} {
		v, ok := rec.Get(k)
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if strings.HasSuffix(s, "%") {
				continue
			}
		}
		return currency.Parse(v)
	}
	return 0
}

func clampNonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
