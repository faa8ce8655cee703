package entities

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEntities(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Entities Suite")
}

var _ = Describe("Extract", func() {
	It("finds dates, amounts, percents, emails and URLs with offsets", func() {
		text := "Invoice dated 2024-01-15, total $1,234.56 (tax 8.25%). " +
			"Contact billing@acme.example or https://acme.example/pay"

		found := Extract(text)

		types := map[Type][]string{}
		for _, e := range found {
			types[e.Type] = append(types[e.Type], e.Text)
			Expect(text[e.Start:e.End]).To(Equal(e.Text))
		}

		Expect(types[TypeDate]).To(ContainElement("2024-01-15"))
		Expect(types[TypeMoney]).To(ContainElement("$1,234.56"))
		Expect(types[TypePercent]).To(ContainElement("8.25%"))
		Expect(types[TypeEmail]).To(ContainElement("billing@acme.example"))
		Expect(types[TypeURL]).To(ContainElement("https://acme.example/pay"))
	})

	It("returns nothing for entity-free text", func() {
		Expect(Extract("plain words only")).To(BeEmpty())
	})
})

var _ = Describe("FirstDate", func() {
	It("prefers ISO dates over ambiguous slash forms", func() {
		d, ok := FirstDate("shipped 01/02/2024, invoiced 2024-01-15")
		Expect(ok).To(BeTrue())
		Expect(d).To(Equal("2024-01-15"))
	})

	It("falls back to month-name dates", func() {
		d, ok := FirstDate("Due by January 31, 2024")
		Expect(ok).To(BeTrue())
		Expect(d).To(Equal("January 31, 2024"))
	})

	It("reports absence", func() {
		_, ok := FirstDate("no dates here")
		Expect(ok).To(BeFalse())
	})
})
