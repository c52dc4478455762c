package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// marshalled ReceiptRecord, as a generic map. Exporters validate against it
// before writing anything downstream.
func BuildRecordJSONSchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":        map[string]any{"type": "string", "minLength": 1},
			"quantity":    map[string]any{"type": "integer", "minimum": 1},
			"unit_price":  map[string]any{"type": "number", "minimum": 0},
			"total_price": map[string]any{"type": "number"},
		},
		"required": []string{"name", "quantity", "total_price"},
	}

	props := map[string]any{
		"merchant_name":   map[string]any{"type": "string", "minLength": 1},
		"date":            map[string]any{"type": "string"},
		"total_amount":    map[string]any{"type": "number", "minimum": 0},
		"subtotal_amount": map[string]any{"type": "number", "minimum": 0},
		"tax_amount":      map[string]any{"type": "number", "minimum": 0},
		"items":           map[string]any{"type": "array", "minItems": 1, "items": item},
		"payment_method":  map[string]any{"type": "string"},
		"receipt_number":  map[string]any{"type": "string", "pattern": `^\d{4,}$`},
		"confidence":      map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
	}
	required := []string{"merchant_name", "date", "total_amount", "confidence"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

// ValidateRecordJSON validates marshalled record bytes against the record schema.
func ValidateRecordJSON(data []byte) error {
	b, err := json.Marshal(BuildRecordJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
