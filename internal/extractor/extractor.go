// Package extractor normalizes an uploaded file into the plain-text buffer
// the format detector consumes. Ledger products export disbursement listings
// as plain text, CSV, XLSX, or PDF; the latter two are flattened to text
// here before parsing.
package extractor

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/titleflow/wire-batch-pipeline/internal/csvfmt"
)

// Normalize converts an upload into parser input based on its extension.
// Plain text and CSV pass through untouched.
func Normalize(filename string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".xlsx", ".xlsm":
		return extractXLSX(data)
	default:
		return data, nil
	}
}

// extractPDF pulls text out of a PDF disbursement listing page by page.
// Image-based or garbled PDFs are rejected rather than fed to the parser.
func extractPDF(data []byte) ([]byte, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	out := b.String()
	if !isReadableText(out) {
		return nil, fmt.Errorf("PDF text could not be decoded into readable content; the file may be image-based or use custom font encodings")
	}
	return []byte(out), nil
}

// extractXLSX flattens the first sheet of a workbook into CSV text so the
// tabular parser can treat it like any other delimited upload.
func extractXLSX(data []byte) ([]byte, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(csvfmt.JoinRow(row))
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

// isReadableText reports whether at least 70% of the characters are plain
// ASCII text. Identity-encoded PDF fonts produce garbage that would otherwise
// flow into the parser as an "unrecognized format" error with no useful hint.
func isReadableText(text string) bool {
	if text == "" {
		return false
	}
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			strings.ContainsRune(".,-/:;()'\"$#&@", r) {
			readable++
		}
	}
	return float64(readable)/float64(total) >= 0.7
}
