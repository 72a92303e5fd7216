// Package parser classifies an uploaded disbursement file as fixed-width or
// tabular and extracts payout line items with per-line diagnostics.
package parser

import (
	"strings"

	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

// fixedRecordWidth is the length of every record in the fixed-width format.
const fixedRecordWidth = 94

// headerVocabulary are lower-cased words expected in a tabular header row.
var headerVocabulary = []string{
	"payee", "beneficiary", "recipient", "name",
	"routing", "aba", "transit",
	"account", "amount", "payment", "total",
	"reference", "deal", "order", "memo", "description",
}

// Parse detects the format of buf and extracts payout items. A single bad
// line never aborts the parse; only an unrecognized format or missing
// mandatory columns produce a document-scoped failure.
func Parse(buf []byte, filename string) models.ParseResult {
	lines := splitLines(string(buf))

	first := ""
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			first = l
			break
		}
	}

	if looksFixedWidth(first) {
		return parseFixedWidth(lines)
	}
	if looksTabular(first, filename) {
		return parseTabular(lines)
	}

	return models.ParseResult{
		Success:  false,
		FileType: models.FileUnknown,
		Errors: []models.ParseError{{
			Message: "unrecognized file format: expected a fixed-width batch file or a delimited file with a header row",
		}},
	}
}

// looksFixedWidth checks the file-header signature: a full-width first record
// whose first byte is the header marker followed by two digits.
func looksFixedWidth(first string) bool {
	if len(first) < fixedRecordWidth {
		return false
	}
	return first[0] == recordTypeFileHeader && isDigit(first[1]) && isDigit(first[2])
}

// looksTabular accepts .csv uploads and any first line containing one of the
// expected header words.
func looksTabular(first, filename string) bool {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return true
	}
	lower := strings.ToLower(first)
	for _, word := range headerVocabulary {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	return lines
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func finishResult(r *models.ParseResult) models.ParseResult {
	r.ItemCount = len(r.Items)
	var total int64
	for _, it := range r.Items {
		total += it.AmountCents
	}
	r.TotalAmountCents = total
	return *r
}
