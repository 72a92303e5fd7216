package parser

import (
	"strings"
	"testing"

	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

func pad(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func fileHeaderRecord() string {
	return pad("101 091000019 1234567892408301200A094101DEST BANK", fixedRecordWidth)
}

func batchHeaderRecord(companyID string) string {
	return "5" + pad("200TITLEFLOW ESCROW", 39) + pad(companyID, 10) + strings.Repeat(" ", 44)
}

func entryRecord(txnCode, routing, account, cents, ref, payee string) string {
	return "6" + txnCode + routing +
		pad(account, 17) + zeroPad(cents, 10) + pad(ref, 15) + pad(payee, 22) +
		strings.Repeat(" ", 18)
}

func TestParseFixedWidthCreditEntry(t *testing.T) {
	buf := strings.Join([]string{
		fileHeaderRecord(),
		batchHeaderRecord("ESCROW1234"),
		entryRecord("22", "021000021", "123456789", "123456", "DEAL-1", "JOHN SMITH"),
	}, "\n")

	result := Parse([]byte(buf), "batch.ach")
	if result.FileType != models.FileFixedWidth {
		t.Fatalf("file type = %q, want %q", result.FileType, models.FileFixedWidth)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(result.Items))
	}

	item := result.Items[0]
	if item.LineNumber != 3 {
		t.Errorf("line number = %d, want 3", item.LineNumber)
	}
	if item.PayeeName != "JOHN SMITH" {
		t.Errorf("payee = %q", item.PayeeName)
	}
	if item.RoutingNumber != "021000021" {
		t.Errorf("routing = %q", item.RoutingNumber)
	}
	if item.AccountNumber != "123456789" {
		t.Errorf("account = %q", item.AccountNumber)
	}
	if item.AmountCents != 123456 {
		t.Errorf("amount = %d cents, want 123456", item.AmountCents)
	}
	if item.Reference != "DEAL-1" {
		t.Errorf("reference = %q", item.Reference)
	}
	if item.AccountType != models.AccountChecking {
		t.Errorf("account type = %q, want checking", item.AccountType)
	}
	if result.TotalAmountCents != 123456 {
		t.Errorf("total = %d", result.TotalAmountCents)
	}
}

func TestParseFixedWidthSavingsCredit(t *testing.T) {
	buf := entryRecord("32", "021000021", "99887766", "5000", "R-2", "JANE DOE")
	// No file header: detection needs one, so prepend it.
	buf = fileHeaderRecord() + "\n" + buf

	result := Parse([]byte(buf), "batch.ach")
	if len(result.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(result.Items))
	}
	if result.Items[0].AccountType != models.AccountSavings {
		t.Errorf("account type = %q, want savings", result.Items[0].AccountType)
	}
}

// Debit and prenote codes are not payouts: no item, no error.
func TestParseFixedWidthSkipsNonCreditCodes(t *testing.T) {
	for _, code := range []string{"27", "37", "23", "33", "28", "38"} {
		t.Run(code, func(t *testing.T) {
			buf := strings.Join([]string{
				fileHeaderRecord(),
				entryRecord(code, "021000021", "123456789", "123456", "DEAL-1", "JOHN SMITH"),
			}, "\n")

			result := Parse([]byte(buf), "batch.ach")
			if len(result.Items) != 0 {
				t.Errorf("got %d items, want 0", len(result.Items))
			}
			if len(result.Errors) != 0 {
				t.Errorf("got %d errors, want 0", len(result.Errors))
			}
		})
	}
}

func TestParseFixedWidthSkipsOtherRecordKinds(t *testing.T) {
	buf := strings.Join([]string{
		fileHeaderRecord(),
		pad("820000000100210000210000000000000012345600", fixedRecordWidth), // batch control
		pad("9000001000001000000010021000021000000123456", fixedRecordWidth), // file control
	}, "\n")

	result := Parse([]byte(buf), "batch.ach")
	if len(result.Items) != 0 || len(result.Errors) != 0 {
		t.Errorf("items=%d errors=%d, want 0/0", len(result.Items), len(result.Errors))
	}
	if !result.Success {
		t.Error("structure is intact, expected success")
	}
}

func TestParseFixedWidthReferenceFallback(t *testing.T) {
	tests := []struct {
		name    string
		records []string
		wantRef string
	}{
		{
			name: "batch header supplies missing reference",
			records: []string{
				fileHeaderRecord(),
				batchHeaderRecord("ESCROW1234"),
				entryRecord("22", "021000021", "123456789", "100", "", "JOHN SMITH"),
			},
			wantRef: "ESCROW1234",
		},
		{
			name: "synthesized line token when no batch header",
			records: []string{
				fileHeaderRecord(),
				entryRecord("22", "021000021", "123456789", "100", "", "JOHN SMITH"),
			},
			wantRef: "LINE-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse([]byte(strings.Join(tt.records, "\n")), "batch.ach")
			if len(result.Items) != 1 {
				t.Fatalf("got %d items, want 1", len(result.Items))
			}
			if result.Items[0].Reference != tt.wantRef {
				t.Errorf("reference = %q, want %q", result.Items[0].Reference, tt.wantRef)
			}
		})
	}
}

func TestParseFixedWidthLineErrors(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"non-digit routing", entryRecord("22", "0210000AB", "123456789", "100", "R", "JOHN")},
		{"zero amount", entryRecord("22", "021000021", "123456789", "0", "R", "JOHN")},
		{"empty account", entryRecord("22", "021000021", "", "100", "R", "JOHN")},
		{"empty payee", entryRecord("22", "021000021", "123456789", "100", "R", "")},
		{"short record", "622021000021TRUNCATED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := strings.Join([]string{
				fileHeaderRecord(),
				tt.record,
				entryRecord("22", "091000019", "555", "200", "R-OK", "GOOD ITEM"),
			}, "\n")

			result := Parse([]byte(buf), "batch.ach")
			if len(result.Errors) != 1 {
				t.Fatalf("got %d errors, want 1: %+v", len(result.Errors), result.Errors)
			}
			if result.Errors[0].LineNumber != 2 {
				t.Errorf("error line = %d, want 2", result.Errors[0].LineNumber)
			}
			// Parsing continues past the bad line.
			if len(result.Items) != 1 || result.Items[0].PayeeName != "GOOD ITEM" {
				t.Errorf("sibling item not preserved: %+v", result.Items)
			}
		})
	}
}
