// Package entities finds dates, amounts, emails and similar tokens in free
// text using regex patterns. The normalizer uses it to recover an invoice
// date from raw OCR text when the extractor left the date field empty.
package entities

import "regexp"

// Type labels an extracted entity.
type Type string

const (
	TypeDate    Type = "DATE"
	TypeMoney   Type = "MONEY"
	TypePercent Type = "PERCENT"
	TypeEmail   Type = "EMAIL"
	TypeURL     Type = "URL"
)

// Entity is one match with its byte offsets in the scanned text.
type Entity struct {
	Type  Type   `json:"type"`
	Text  string `json:"text"`
	Start int    `json:"offset_start"`
	End   int    `json:"offset_end"`
}

var (
	reDates = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b`),
		regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`),
		regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}\b`),
	}
	reMoney = []*regexp.Regexp{
		regexp.MustCompile(`[$€£]\d{1,3}(?:,\d{3})*(?:\.\d{2})?\b`),
		regexp.MustCompile(`(?i)\b\d+(?:\.\d{2})?\s*(?:dollars|USD|EUR|GBP)\b`),
	}
	rePercent = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+(?:\.\d+)?%`),
	}
	reEmail = []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	}
	reURL = []*regexp.Regexp{
		regexp.MustCompile(`https?://[-\w.%]+[/\w.\-=&%?]*`),
	}

	patterns = []struct {
		typ Type
		res []*regexp.Regexp
	}{
		{TypeDate, reDates},
		{TypeMoney, reMoney},
		{TypePercent, rePercent},
		{TypeEmail, reEmail},
		{TypeURL, reURL},
	}
)

// Extract scans text and returns every entity found, grouped by type in
// pattern order.
func Extract(text string) []Entity {
	var out []Entity
	for _, p := range patterns {
		for _, re := range p.res {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				out = append(out, Entity{
					Type:  p.typ,
					Text:  text[loc[0]:loc[1]],
					Start: loc[0],
					End:   loc[1],
				})
			}
		}
	}
	return out
}

// FirstDate returns the first date-like token in text, if any. Pattern order
// prefers unambiguous YYYY-MM-DD forms.
func FirstDate(text string) (string, bool) {
	for _, re := range reDates {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}
