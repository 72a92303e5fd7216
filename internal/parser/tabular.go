package parser

import (
	"fmt"
	"strings"

	"github.com/titleflow/wire-batch-pipeline/internal/csvfmt"
	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

// columnMap records which column index feeds each item field. -1 means the
// column is absent.
type columnMap struct {
	payee     int
	routing   int
	account   int
	acctType  int
	amount    int
	reference int
	memo      int
}

// parseTabular parses a comma-separated file whose first row is a header.
// Payee and amount columns are mandatory; bank details are tolerated as
// missing because they are commonly supplied by a separate manual step.
func parseTabular(lines []string) models.ParseResult {
	result := models.ParseResult{
		Success:  true,
		FileType: models.FileTabular,
	}

	headerIdx := -1
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		result.Success = false
		result.Errors = append(result.Errors, models.ParseError{Message: "file is empty"})
		return finishResult(&result)
	}

	cols, warnings := mapColumns(csvfmt.SplitRow(lines[headerIdx]))
	result.Warnings = warnings

	if cols.payee < 0 || cols.amount < 0 {
		missing := "payee name"
		if cols.payee >= 0 {
			missing = "amount"
		}
		result.Success = false
		result.Errors = append(result.Errors, models.ParseError{
			LineNumber: headerIdx + 1,
			Message:    fmt.Sprintf("no %s column found in header row", missing),
			RawLine:    lines[headerIdx],
		})
		return finishResult(&result)
	}

	for i := headerIdx + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		item, perr := parseTabularRow(csvfmt.SplitRow(lines[i]), cols, i+1, lines[i])
		if perr != nil {
			result.Errors = append(result.Errors, *perr)
			continue
		}
		result.Items = append(result.Items, *item)
	}

	return finishResult(&result)
}

// mapColumns builds the column map from a header row using case-insensitive
// synonym matching. The first column matching each group wins; later columns
// that would also match are reported as warnings rather than silently
// ignored, since overlapping headers are a real hazard in exported files.
func mapColumns(headers []string) (columnMap, []string) {
	cols := columnMap{payee: -1, routing: -1, account: -1, acctType: -1, amount: -1, reference: -1, memo: -1}
	var warnings []string

	claim := func(slot *int, name string, i int, header string) {
		if *slot < 0 {
			*slot = i
			return
		}
		warnings = append(warnings, fmt.Sprintf(
			"column %d (%q) also matches %s; keeping column %d", i+1, header, name, *slot+1))
	}

	for i, h := range headers {
		header := strings.TrimSpace(h)
		lower := strings.ToLower(header)
		switch {
		case containsAny(lower, "payee", "beneficiary", "recipient", "name"):
			claim(&cols.payee, "payee name", i, header)
		case containsAny(lower, "routing", "aba", "transit"):
			claim(&cols.routing, "routing number", i, header)
		case containsAny(lower, "account", "acct") && strings.Contains(lower, "type"):
			claim(&cols.acctType, "account type", i, header)
		case containsAny(lower, "account", "acct"):
			claim(&cols.account, "account number", i, header)
		case containsAny(lower, "amount", "payment", "total"):
			claim(&cols.amount, "amount", i, header)
		case containsAny(lower, "reference", "ref", "deal", "order", "file"):
			claim(&cols.reference, "reference", i, header)
		case containsAny(lower, "memo", "note", "description", "desc"):
			claim(&cols.memo, "memo", i, header)
		}
	}

	return cols, warnings
}

func parseTabularRow(fields []string, cols columnMap, lineNum int, raw string) (*models.ParsedPayoutItem, *models.ParseError) {
	get := func(idx int) string {
		if idx < 0 || idx >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[idx])
	}

	payee := get(cols.payee)
	if payee == "" {
		return nil, &models.ParseError{
			LineNumber: lineNum,
			Message:    "missing payee name",
			RawLine:    raw,
		}
	}

	cents, err := parseAmountCents(get(cols.amount))
	if err != nil {
		return nil, &models.ParseError{
			LineNumber: lineNum,
			Message:    fmt.Sprintf("invalid amount %q: %v", get(cols.amount), err),
			RawLine:    raw,
		}
	}
	if cents <= 0 {
		return nil, &models.ParseError{
			LineNumber: lineNum,
			Message:    fmt.Sprintf("amount must be positive, got %q", get(cols.amount)),
			RawLine:    raw,
		}
	}

	ref := get(cols.reference)
	if ref == "" {
		ref = fmt.Sprintf("LINE-%d", lineNum)
	}

	return &models.ParsedPayoutItem{
		LineNumber:    lineNum,
		PayeeName:     payee,
		RoutingNumber: get(cols.routing),
		AccountNumber: get(cols.account),
		AmountCents:   cents,
		Reference:     ref,
		AccountType:   normalizeAccountType(get(cols.acctType)),
		Memo:          get(cols.memo),
		RawLine:       raw,
	}, nil
}

func normalizeAccountType(s string) models.AccountCategory {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "sav"):
		return models.AccountSavings
	case strings.Contains(lower, "check"), strings.Contains(lower, "chk"):
		return models.AccountChecking
	default:
		return ""
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
