// Package extractor scans log messages for correlation identifiers. It works
// on raw substrings, never on parsed JSON, so truncated or malformed payloads
// simply yield fewer keys instead of failing.
package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"loglens/internal/models"
)

// DefaultFields is the built-in allow-list of structured identifier fields,
// in the order they were observed in production payloads. Both spellings of
// the shop identifier occur in the wild.
var DefaultFields = []string{
	"TSCode",
	"TMCode",
	"ShippingOrderCode",
	"OrderCode",
	"Shopid",
	"ShopId",
}

// numberPattern matches standalone 8-15 digit tokens for the numeric
// fallback pass.
var numberPattern = regexp.MustCompile(`\b\d{8,15}\b`)

// Extractor scans text for identifier keys using a fixed field allow-list.
type Extractor struct {
	fields       []string
	fieldPattern *regexp.Regexp
}

// New returns an Extractor over the default field allow-list.
func New() *Extractor {
	return NewWithFields(DefaultFields)
}

// NewWithFields returns an Extractor over a custom allow-list. An empty list
// disables the structured pass; the numeric fallback still runs.
func NewWithFields(fields []string) *Extractor {
	e := &Extractor{fields: fields}
	if len(fields) > 0 {
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = regexp.QuoteMeta(f)
		}
		// Matches "Field": "value" and "Field":value forms.
		e.fieldPattern = regexp.MustCompile(fmt.Sprintf(
			`"(%s)"\s*:\s*(?:"([^"]*)"|([^",}\s]+))`,
			strings.Join(quoted, "|")))
	}
	return e
}

// Fields returns the configured allow-list.
func (e *Extractor) Fields() []string {
	return e.fields
}

// ExtractKeys returns every identifier key found in text. Structured keys
// come first, in text order, followed by de-duplicated numeric fallback
// keys; that ordering is the matching priority downstream.
func (e *Extractor) ExtractKeys(text string) []models.IdentifierKey {
	var keys []models.IdentifierKey

	if e.fieldPattern != nil {
		for _, m := range e.fieldPattern.FindAllStringSubmatch(text, -1) {
			value := m[2]
			if value == "" {
				value = m[3]
			}
			// A bare null is JSON's absent value, not an identifier.
			if value == "" || value == "null" {
				continue
			}
			keys = append(keys, models.IdentifierKey{
				Kind:  models.KeyKind(m[1]),
				Value: value,
			})
		}
	}

	// The numeric pass runs unconditionally; structured and numeric keys
	// may coexist for one record.
	seen := make(map[string]bool)
	for _, digits := range numberPattern.FindAllString(text, -1) {
		if seen[digits] {
			continue
		}
		seen[digits] = true
		keys = append(keys, models.IdentifierKey{
			Kind:  models.KindNumberMatch,
			Value: digits,
		})
	}

	return keys
}

// defaultExtractor backs the package-level convenience function.
var defaultExtractor = New()

// ExtractKeys scans text with the default field allow-list.
func ExtractKeys(text string) []models.IdentifierKey {
	return defaultExtractor.ExtractKeys(text)
}
