package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/invoice-trust/internal/common"
)

// BuildRecordJSONSchema returns the structural schema for raw extraction
// records as a generic map. The schema is deliberately loose: every field is
// optional and may be a string, number, or null (currency-formatted strings
// are the normalizer's problem). It only rejects documents the engine cannot
// walk at all, e.g. line_items that is not an array.
func BuildRecordJSONSchema() map[string]any {
	scalar := func() map[string]any {
		return map[string]any{"type": []string{"string", "number", "null"}}
	}

	itemProps := map[string]any{
		"item_name":   scalar(),
		"item":        scalar(),
		"description": scalar(),
		"quantity":    scalar(),
		"rate":        scalar(),
		"amount":      scalar(),
	}

	props := map[string]any{
		"invoice_number":  scalar(),
		"date":            scalar(),
		"vendor":          scalar(),
		"vendor_name":     scalar(),
		"customer":        scalar(),
		"raw_text":        map[string]any{"type": []string{"string", "null"}},
		"subtotal":        scalar(),
		"shipping":        scalar(),
		"discount":        scalar(),
		"discount_amount": scalar(),
		"tax":             scalar(),
		"total":           scalar(),
		"total_amount":    scalar(),
		"grand_total":     scalar(),
		"balance_due":     scalar(),
		"line_items": map[string]any{
			"type": []string{"array", "null"},
			"items": map[string]any{
				"type":                 "object",
				"properties":           itemProps,
				"additionalProperties": true,
			},
		},
		"financial_summary": map[string]any{
			"type": []string{"object", "null"},
		},
	}

	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": true,
	}
}

var (
	schemaOnce      sync.Once
	recordSchema    *jsonschema.Schema
	recordSchemaErr error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(BuildRecordJSONSchema())
		if err != nil {
			recordSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
			recordSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		recordSchema, recordSchemaErr = compiler.Compile("record.json")
	})
	return recordSchema, recordSchemaErr
}

// DecodeRecord parses a raw extraction document and verifies it is
// structurally usable. A failure here is the programmer-error class from the
// engine's taxonomy; bad field values never fail decoding.
func DecodeRecord(data []byte) (Record, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, common.NewAppError("SCHEMA_ERROR", "compile record schema", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, common.NewAppError("MALFORMED_DOCUMENT", "document is not valid JSON", common.ErrMalformedDocument)
	}
	if err := schema.Validate(v); err != nil {
		return nil, common.NewAppError("MALFORMED_DOCUMENT", err.Error(), common.ErrMalformedDocument)
	}

	rec, ok := v.(map[string]any)
	if !ok {
		return nil, common.NewAppError("MALFORMED_DOCUMENT", "document is not a JSON object", common.ErrMalformedDocument)
	}
	return Record(rec), nil
}
