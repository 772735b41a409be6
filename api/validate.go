package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
)

const createGigSchemaJSON = `{
	"type": "object",
	"required": ["title", "budget"],
	"properties": {
		"title": {"type": "string", "minLength": 1, "maxLength": 200},
		"description": {"type": "string", "maxLength": 5000},
		"budget": {"type": "number", "exclusiveMinimum": 0}
	}
}`

const createBidSchemaJSON = `{
	"type": "object",
	"required": ["gig_id", "price"],
	"properties": {
		"gig_id": {"type": "integer", "exclusiveMinimum": 0},
		"message": {"type": "string", "maxLength": 2000},
		"price": {"type": "number", "exclusiveMinimum": 0}
	}
}`

var (
	createGigSchema = mustCompileSchema(createGigSchemaJSON)
	createBidSchema = mustCompileSchema(createBidSchemaJSON)
)

func mustCompileSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return rs
}

// validatePayload checks body against the schema and returns the first
// violation, or a decode error for malformed JSON.
func validatePayload(ctx context.Context, rs *jsonschema.Schema, body []byte) error {
	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return fmt.Errorf("invalid json")
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("%s: %s", keyErrs[0].PropertyPath, keyErrs[0].Message)
	}

	return nil
}
