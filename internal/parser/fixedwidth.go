package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

// Record type markers (byte 0 of each fixed-width record).
const (
	recordTypeFileHeader  = '1'
	recordTypeBatchHeader = '5'
	recordTypeEntryDetail = '6'
)

// creditTxnCodes are the transaction codes that represent payouts. Debit and
// prenotification codes are legitimately present in batch files but are not
// disbursements, so they are skipped without error.
var creditTxnCodes = map[string]models.AccountCategory{
	"22": models.AccountChecking,
	"32": models.AccountSavings,
}

// Entry-detail byte offsets (zero-based, half-open).
const (
	fwTxnCodeStart = 1
	fwTxnCodeEnd   = 3
	fwRoutingStart = 3
	fwRoutingEnd   = 12
	fwAccountStart = 12
	fwAccountEnd   = 29
	fwAmountStart  = 29
	fwAmountEnd    = 39
	fwRefStart     = 39
	fwRefEnd       = 54
	fwPayeeStart   = 54
	fwPayeeEnd     = 76
)

// Batch-header company identification, used as a fallback reference id for
// entry records that carry none.
const (
	fwBatchRefStart = 40
	fwBatchRefEnd   = 50
)

// parseFixedWidth walks newline-delimited fixed-width records. Only batch
// headers and entry details matter here; every other record kind is skipped.
func parseFixedWidth(lines []string) models.ParseResult {
	result := models.ParseResult{
		Success:  true,
		FileType: models.FileFixedWidth,
	}

	batchRef := ""
	for i, line := range lines {
		lineNum := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch line[0] {
		case recordTypeBatchHeader:
			if len(line) >= fwBatchRefEnd {
				batchRef = strings.TrimSpace(line[fwBatchRefStart:fwBatchRefEnd])
			}
		case recordTypeEntryDetail:
			item, perr := parseEntryDetail(line, lineNum, batchRef)
			if perr != nil {
				result.Errors = append(result.Errors, *perr)
				continue
			}
			if item != nil {
				result.Items = append(result.Items, *item)
			}
		default:
			// file header, addenda, batch/file control: not payouts
		}
	}

	return finishResult(&result)
}

// parseEntryDetail extracts one payout from an entry-detail record. A nil,
// nil return means the record is a non-credit entry and simply not a payout.
func parseEntryDetail(line string, lineNum int, batchRef string) (*models.ParsedPayoutItem, *models.ParseError) {
	if len(line) < fixedRecordWidth {
		return nil, &models.ParseError{
			LineNumber: lineNum,
			Message:    fmt.Sprintf("entry record is %d characters, expected %d", len(line), fixedRecordWidth),
			RawLine:    line,
		}
	}

	txnCode := line[fwTxnCodeStart:fwTxnCodeEnd]
	category, ok := creditTxnCodes[txnCode]
	if !ok {
		return nil, nil
	}

	routing := line[fwRoutingStart:fwRoutingEnd]
	if !isDigits(routing) {
		return nil, &models.ParseError{
			LineNumber: lineNum,
			Message:    fmt.Sprintf("invalid routing number %q: expected 9 digits", strings.TrimSpace(routing)),
			RawLine:    line,
		}
	}

	cents, err := strconv.ParseInt(strings.TrimSpace(line[fwAmountStart:fwAmountEnd]), 10, 64)
	if err != nil || cents <= 0 {
		return nil, &models.ParseError{
			LineNumber: lineNum,
			Message:    fmt.Sprintf("invalid amount %q: expected positive zero-padded cents", strings.TrimSpace(line[fwAmountStart:fwAmountEnd])),
			RawLine:    line,
		}
	}

	account := strings.TrimSpace(line[fwAccountStart:fwAccountEnd])
	if account == "" {
		return nil, &models.ParseError{
			LineNumber: lineNum,
			Message:    "missing account number",
			RawLine:    line,
		}
	}

	payee := strings.TrimSpace(line[fwPayeeStart:fwPayeeEnd])
	if payee == "" {
		return nil, &models.ParseError{
			LineNumber: lineNum,
			Message:    "missing payee name",
			RawLine:    line,
		}
	}

	ref := strings.TrimSpace(line[fwRefStart:fwRefEnd])
	if ref == "" {
		ref = batchRef
	}
	if ref == "" {
		ref = fmt.Sprintf("LINE-%d", lineNum)
	}

	return &models.ParsedPayoutItem{
		LineNumber:    lineNum,
		PayeeName:     payee,
		RoutingNumber: routing,
		AccountNumber: account,
		AmountCents:   cents,
		Reference:     ref,
		AccountType:   category,
		RawLine:       line,
	}, nil
}
