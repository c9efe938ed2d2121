package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"

	"eatery_catalog/internal/domain"
)

// eaterySchema is the contract for one blob. Extra keys are allowed.
const eaterySchema = `{
  "type": "object",
  "required": ["id", "name", "category", "open_time", "close_time", "rating", "photo", "address", "phone_number", "reviews"],
  "properties": {
    "id":           {"type": "integer", "minimum": 0},
    "name":         {"type": "string"},
    "category":     {"type": "array", "items": {"type": "string"}},
    "open_time":    {"type": "string"},
    "close_time":   {"type": "string"},
    "rating":       {"type": "number"},
    "photo":        {"type": "string"},
    "address":      {"type": "string"},
    "phone_number": {"type": "string"},
    "reviews":      {"type": "array", "items": {"type": "string"}}
  }
}`

// maxReportedViolations caps how many schema errors end up in one message.
const maxReportedViolations = 3

var compiledSchema = mustSchema(eaterySchema)

func mustSchema(s string) *gojsonschema.Schema {
	sc, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("eatery schema: %v", err))
	}
	return sc
}

// ParseEatery validates and decodes one blob. Failures wrap domain.ErrMalformedRecord.
func ParseEatery(blob []byte) (domain.Eatery, error) {
	// the decoder would quietly replace bad bytes with U+FFFD
	if !utf8.Valid(blob) {
		return domain.Eatery{}, fmt.Errorf("%w: invalid UTF-8", domain.ErrMalformedRecord)
	}
	res, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(blob))
	if err != nil {
		// not JSON at all
		return domain.Eatery{}, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	if !res.Valid() {
		return domain.Eatery{}, fmt.Errorf("%w: %s", domain.ErrMalformedRecord, describe(res.Errors()))
	}

	var e domain.Eatery
	if err := json.Unmarshal(blob, &e); err != nil {
		// e.g. an id like 1e30 that passes "integer" but overflows uint64
		return domain.Eatery{}, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	return e, nil
}

func describe(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, maxReportedViolations)
	for i, e := range errs {
		if i == maxReportedViolations {
			parts = append(parts, fmt.Sprintf("and %d more", len(errs)-i))
			break
		}
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}
