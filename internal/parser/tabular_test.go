package parser

import (
	"testing"

	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

func TestParseTabularBasic(t *testing.T) {
	buf := "Payee,Routing,Account,Amount,Reference\n" +
		`John Smith,021000021,123456789,"$1,234.56",DEAL-1` + "\n"

	result := Parse([]byte(buf), "payouts.csv")
	if result.FileType != models.FileTabular {
		t.Fatalf("file type = %q, want tabular", result.FileType)
	}
	if !result.Success {
		t.Fatalf("expected success, errors: %+v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(result.Items))
	}

	item := result.Items[0]
	if item.PayeeName != "John Smith" {
		t.Errorf("payee = %q", item.PayeeName)
	}
	if item.RoutingNumber != "021000021" {
		t.Errorf("routing = %q", item.RoutingNumber)
	}
	if item.AmountCents != 123456 {
		t.Errorf("amount = %d cents, want 123456", item.AmountCents)
	}
	if item.AmountDollars() != 1234.56 {
		t.Errorf("amount dollars = %v, want 1234.56", item.AmountDollars())
	}
	if item.Reference != "DEAL-1" {
		t.Errorf("reference = %q", item.Reference)
	}
	if item.LineNumber != 2 {
		t.Errorf("line = %d, want 2", item.LineNumber)
	}
}

func TestParseTabularHeaderSynonyms(t *testing.T) {
	buf := "Beneficiary,ABA Number,Acct Number,Acct Type,Payment Total,Deal Number,Notes\n" +
		"Jane Doe,091000019,555123,Savings,250.00,D-9,closing funds\n"

	result := Parse([]byte(buf), "export.csv")
	if len(result.Items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(result.Items), result.Errors)
	}

	item := result.Items[0]
	if item.PayeeName != "Jane Doe" {
		t.Errorf("payee = %q", item.PayeeName)
	}
	if item.RoutingNumber != "091000019" {
		t.Errorf("routing = %q", item.RoutingNumber)
	}
	if item.AccountNumber != "555123" {
		t.Errorf("account = %q", item.AccountNumber)
	}
	if item.AccountType != models.AccountSavings {
		t.Errorf("account type = %q", item.AccountType)
	}
	if item.AmountCents != 25000 {
		t.Errorf("amount = %d", item.AmountCents)
	}
	if item.Reference != "D-9" {
		t.Errorf("reference = %q", item.Reference)
	}
	if item.Memo != "closing funds" {
		t.Errorf("memo = %q", item.Memo)
	}
}

// The tabular format commonly omits bank details supplied by a later manual
// step; those rows parse cleanly rather than erroring.
func TestParseTabularMissingBankDetailsTolerated(t *testing.T) {
	buf := "Payee,Amount\nJohn Smith,100.00\n"

	result := Parse([]byte(buf), "payouts.csv")
	if !result.Success || len(result.Items) != 1 {
		t.Fatalf("success=%v items=%d errors=%+v", result.Success, len(result.Items), result.Errors)
	}
	item := result.Items[0]
	if item.HasBankDetails() {
		t.Error("expected missing bank details")
	}
	if item.Reference != "LINE-2" {
		t.Errorf("reference = %q, want synthesized LINE-2", item.Reference)
	}
}

func TestParseTabularMandatoryColumns(t *testing.T) {
	tests := []struct {
		name string
		buf  string
	}{
		{"no payee column", "Routing,Amount\n021000021,100.00\n"},
		{"no amount column", "Payee,Routing\nJohn,021000021\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse([]byte(tt.buf), "payouts.csv")
			if result.Success {
				t.Error("expected document-scoped failure")
			}
			if len(result.Items) != 0 {
				t.Errorf("got %d items, want 0", len(result.Items))
			}
			if len(result.Errors) != 1 {
				t.Errorf("got %d errors, want exactly 1", len(result.Errors))
			}
		})
	}
}

func TestParseTabularRowErrors(t *testing.T) {
	buf := "Payee,Amount\n" +
		"John Smith,not-a-number\n" +
		"Jane Doe,-5.00\n" +
		",100.00\n" +
		"Good Row,42.00\n"

	result := Parse([]byte(buf), "payouts.csv")
	if !result.Success {
		t.Fatal("line errors must not fail the document")
	}
	if len(result.Errors) != 3 {
		t.Fatalf("got %d errors, want 3: %+v", len(result.Errors), result.Errors)
	}
	if len(result.Items) != 1 || result.Items[0].PayeeName != "Good Row" {
		t.Fatalf("items = %+v", result.Items)
	}
}

func TestParseTabularAmbiguousHeaderWarns(t *testing.T) {
	buf := "Payee,Recipient,Amount\nJohn,ignored,10.00\n"

	result := Parse([]byte(buf), "payouts.csv")
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for the second payee-group column")
	}
	if len(result.Items) != 1 || result.Items[0].PayeeName != "John" {
		t.Errorf("first-match-wins violated: %+v", result.Items)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	result := Parse([]byte("%PDF-garbage\x00\x01"), "upload.bin")
	if result.Success {
		t.Error("expected failure")
	}
	if result.FileType != models.FileUnknown {
		t.Errorf("file type = %q, want unknown", result.FileType)
	}
	if len(result.Errors) != 1 || len(result.Items) != 0 {
		t.Errorf("errors=%d items=%d, want 1/0", len(result.Errors), len(result.Items))
	}
}
