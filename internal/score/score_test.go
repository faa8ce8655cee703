package score

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joseph-ayodele/invoice-trust/internal/invoice"
	"github.com/joseph-ayodele/invoice-trust/internal/validate"
)

func TestScore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Score Suite")
}

func richRecord() invoice.Record {
	return invoice.Record{
		"invoice_number": "INV-1",
		"date":           "2024-01-15",
		"vendor":         "Acme Corp",
		"customer":       "Globex",
		"line_items": []any{
			map[string]any{
				"item_name":   "Widget",
				"description": "blue, large",
				"quantity":    2.0,
				"rate":        "12.50",
				"amount":      "25.00",
			},
		},
		"subtotal": "25.00",
		"shipping": "5.00",
		"discount": "0.00",
		"tax":      "2.00",
		"total":    "32.00",
	}
}

var _ = Describe("ScoreExtraction", func() {
	It("scores a rich, plausible extraction at 1.0", func() {
		rec := richRecord()
		e := ScoreExtraction(invoice.Normalize(rec), rec)

		Expect(e.FieldPresence).To(Equal(1.0))
		Expect(e.FieldQuality).To(Equal(1.0))
		Expect(e.Completeness).To(Equal(1.0))
		Expect(e.DataConsistency).To(Equal(1.0))
		Expect(e.Overall).To(Equal(1.0))
	})

	It("scores an empty record at zero presence and consistency", func() {
		rec := invoice.Record{}
		e := ScoreExtraction(invoice.Normalize(rec), rec)

		Expect(e.FieldPresence).To(Equal(0.0))
		Expect(e.DataConsistency).To(Equal(0.0))
		Expect(e.Overall).To(BeNumerically("<", 0.2))
	})

	It("is independent of arithmetic correctness", func() {
		rec := richRecord()
		items := rec["line_items"].([]any)
		items[0].(map[string]any)["amount"] = "999.00" // math is now wrong

		e := ScoreExtraction(invoice.Normalize(rec), rec)
		Expect(e.Overall).To(Equal(1.0))
	})

	It("penalizes implausible field values, not just absence", func() {
		rec := richRecord()
		rec["date"] = "not a date"
		rec["vendor"] = "12345"

		e := ScoreExtraction(invoice.Normalize(rec), rec)
		Expect(e.FieldPresence).To(Equal(1.0))
		Expect(e.FieldQuality).To(BeNumerically("~", 1.0/3, 1e-9))
	})

	It("counts only fully populated numeric line items as consistent", func() {
		rec := richRecord()
		rec["line_items"] = []any{
			map[string]any{"item_name": "Widget", "quantity": 1.0, "rate": "10", "amount": "10"},
			map[string]any{"item_name": "Mystery", "quantity": "??", "rate": "10", "amount": "10"},
			map[string]any{"quantity": 1.0, "rate": "10", "amount": "10"}, // no name
			map[string]any{"item_name": "Gap", "rate": "10", "amount": "10"},
		}

		e := ScoreExtraction(invoice.Normalize(rec), rec)
		Expect(e.DataConsistency).To(Equal(0.25))
	})

	It("gives partial completeness credit for partially rich records", func() {
		rec := invoice.Record{
			"invoice_number": "INV-2",
			"date":           "2024-01-15",
			"vendor":         "Acme Corp",
			"customer":       "Globex",
			"tax":            "2.00",
			"total":          "32.00",
		}

		e := ScoreExtraction(invoice.Normalize(rec), rec)
		Expect(e.Completeness).To(BeNumerically("~", 2.0/5, 1e-9))
	})
})

var _ = Describe("ScoreValidation", func() {
	It("maps a fully valid result to 1.0", func() {
		res := validate.Result{LineItemsValid: true, SubtotalValid: true, TotalValid: true, OverallValid: true}
		Expect(ScoreValidation(res)).To(Equal(1.0))
	})

	It("maps a broken roll-up over sound line items to 0.5", func() {
		res := validate.Result{LineItemsValid: true, SubtotalValid: false, TotalValid: true}
		Expect(ScoreValidation(res)).To(Equal(0.5))
	})

	It("maps broken line items to 0.3", func() {
		res := validate.Result{LineItemsValid: false, SubtotalValid: true, TotalValid: true}
		Expect(ScoreValidation(res)).To(Equal(0.3))
	})
})
