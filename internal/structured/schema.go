package structured

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var nullableString = map[string]any{"type": []string{"string", "null"}}

// blockSchema describes the single object returned for a text block.
var blockSchema = map[string]any{
	"type":     "object",
	"required": []string{"name"},
	"properties": map[string]any{
		"name":           map[string]any{"type": "string"},
		"address":        nullableString,
		"phone":          nullableString,
		"email":          nullableString,
		"contact_person": nullableString,
		"description":    nullableString,
	},
}

// vendorSchema describes one element of the array returned for an image.
var vendorSchema = map[string]any{
	"type":     "object",
	"required": []string{"name"},
	"properties": map[string]any{
		"name":           map[string]any{"type": "string"},
		"email":          nullableString,
		"phone":          nullableString,
		"contact_person": nullableString,
		"contact_title":  nullableString,
		"vendor_type":    nullableString,
		"status":         nullableString,
		"address":        nullableString,
		"city":           nullableString,
		"state":          nullableString,
		"zip_code":       nullableString,
		"website":        nullableString,
		"description":    nullableString,
		"rating":         map[string]any{"type": []string{"integer", "number", "string", "null"}},
	},
}

func compileSchema(name string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
