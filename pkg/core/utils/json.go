// Package utils holds small helpers for taming model output: JSON repair
// and schema validation for structured replies, and markdown cleanup for
// narrative replies.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes the common JSON defects in model output: single quotes,
// unquoted keys, trailing commas, unclosed brackets, markdown code fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// DecodeModelJSON repairs a raw model reply and unmarshals it into schema.
// The repair pass runs first; if it fails the original text is tried as-is
// so clean replies still parse.
func DecodeModelJSON(raw string, schema interface{}) error {
	repaired, err := RepairJSON(raw)
	if err != nil {
		repaired = raw
	}
	if err := json.Unmarshal([]byte(repaired), schema); err != nil {
		return fmt.Errorf("model reply is not valid JSON: %w", err)
	}
	return nil
}

// DecodeLenientJSON parses Hjson (comments, unquoted keys, optional commas)
// into schema. Used for human-annotated reply formats and config fragments.
func DecodeLenientJSON(raw string, schema interface{}) error {
	if err := hjson.Unmarshal([]byte(raw), schema); err != nil {
		return fmt.Errorf("hjson parse failed: %w", err)
	}
	return nil
}
