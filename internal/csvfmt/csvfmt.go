// Package csvfmt implements the single quoting rule shared by the tabular
// parser and every reconciliation export: a field is wrapped in double quotes,
// with internal quotes doubled, iff it contains a comma, quote, or newline.
// Encoding a field and splitting it back must round-trip byte-for-byte.
package csvfmt

import "strings"

// Quote encodes one field for a CSV row.
func Quote(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// JoinRow encodes a full row, quoting each field as needed.
func JoinRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = Quote(f)
	}
	return strings.Join(quoted, ",")
}

// SplitRow splits one CSV line into fields, honoring double-quoted fields.
// Quoted fields may contain commas and newlines; a doubled quote inside a
// quoted field decodes to a single quote. Fields are returned verbatim,
// without trimming.
func SplitRow(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					cur.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteByte(c)
			}
		case c == '"':
			inQuotes = true
		case c == ',':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())
	return fields
}
