package invoice

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joseph-ayodele/invoice-trust/internal/common"
)

func TestInvoice(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Invoice Suite")
}

var _ = Describe("Normalize", func() {
	It("builds a canonical invoice from a well-formed record", func() {
		rec := Record{
			"invoice_number": "INV-1001",
			"date":           "2024-01-15",
			"vendor":         "Acme Corp",
			"customer":       "Globex",
			"line_items": []any{
				map[string]any{
					"item_name":   "Widget",
					"description": "blue, large",
					"quantity":    2.0,
					"rate":        "$12.50",
					"amount":      "$25.00",
				},
			},
			"subtotal": "$25.00",
			"shipping": "5.00",
			"discount": "0.00",
			"tax":      "2.00",
			"total":    "$32.00",
		}

		inv := Normalize(rec)

		Expect(inv.InvoiceNumber).To(Equal("INV-1001"))
		Expect(inv.Vendor).To(Equal("Acme Corp"))
		Expect(inv.LineItems).To(HaveLen(1))
		Expect(inv.LineItems[0].Name).To(Equal("Widget"))
		Expect(inv.LineItems[0].Quantity).To(Equal(2.0))
		Expect(inv.LineItems[0].Rate).To(Equal(12.50))
		Expect(inv.LineItems[0].Amount).To(Equal(25.00))
		Expect(inv.Subtotal).To(Equal(25.00))
		Expect(inv.Total).To(Equal(32.00))
	})

	It("resolves field aliases with first-non-empty priority", func() {
		inv := Normalize(Record{
			"vendor_name": "Initech",
			"grand_total": "100.00",
			"line_items": []any{
				map[string]any{"item": "Service", "quantity": 1.0, "rate": "100", "amount": "100"},
			},
		})
		Expect(inv.Vendor).To(Equal("Initech"))
		Expect(inv.Total).To(Equal(100.00))
		Expect(inv.LineItems[0].Name).To(Equal("Service"))

		inv = Normalize(Record{"total": "50.00", "grand_total": "999.00"})
		Expect(inv.Total).To(Equal(50.00))

		inv = Normalize(Record{"balance_due": "75.25"})
		Expect(inv.Total).To(Equal(75.25))
	})

	It("reads financial fields nested under financial_summary", func() {
		inv := Normalize(Record{
			"financial_summary": map[string]any{
				"subtotal": "40.00",
				"total":    "44.00",
				"tax":      "4.00",
			},
		})
		Expect(inv.Subtotal).To(Equal(40.00))
		Expect(inv.Tax).To(Equal(4.00))
		Expect(inv.Total).To(Equal(44.00))
	})

	It("treats a percentage-only discount as absent", func() {
		inv := Normalize(Record{"discount": "10%"})
		Expect(inv.Discount).To(Equal(0.0))
	})

	It("prefers a flat discount_amount over a percentage discount", func() {
		inv := Normalize(Record{"discount": "10%", "discount_amount": "5.00"})
		Expect(inv.Discount).To(Equal(5.00))
	})

	It("clamps negative quantity and rate to zero", func() {
		inv := Normalize(Record{
			"line_items": []any{
				map[string]any{"item_name": "Credit", "quantity": -2.0, "rate": "-3.00", "amount": "(6.00)"},
			},
		})
		Expect(inv.LineItems[0].Quantity).To(Equal(0.0))
		Expect(inv.LineItems[0].Rate).To(Equal(0.0))
		Expect(inv.LineItems[0].Amount).To(Equal(-6.00))
	})

	It("recovers a missing date from raw text", func() {
		inv := Normalize(Record{
			"raw_text": "INVOICE\nAcme Corp\nDate: 2024-03-09\nTotal: $10.00",
		})
		Expect(inv.Date).To(Equal("2024-03-09"))
	})

	It("normalizes an empty record to an all-zero invoice", func() {
		inv := Normalize(Record{})
		Expect(inv.LineItems).To(BeEmpty())
		Expect(inv.Total).To(Equal(0.0))
		Expect(inv.Subtotal).To(Equal(0.0))
		Expect(inv.InvoiceNumber).To(Equal(""))
	})
})

var _ = Describe("DecodeRecord", func() {
	It("accepts loosely typed but structurally sound documents", func() {
		rec, err := DecodeRecord([]byte(`{
			"invoice_number": 1001,
			"total": "$12.00",
			"line_items": [{"item_name": "Widget", "amount": null}]
		}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.String("invoice_number")).To(Equal("1001"))
	})

	It("rejects documents that are not JSON objects", func() {
		_, err := DecodeRecord([]byte(`[1, 2, 3]`))
		Expect(err).To(MatchError(common.ErrMalformedDocument))
	})

	It("rejects line_items that is not an array", func() {
		_, err := DecodeRecord([]byte(`{"line_items": "oops"}`))
		Expect(err).To(MatchError(common.ErrMalformedDocument))
	})

	It("rejects invalid JSON", func() {
		_, err := DecodeRecord([]byte(`{"invoice_number":`))
		Expect(err).To(MatchError(common.ErrMalformedDocument))
	})
})
