package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

func TestFormatDetection(t *testing.T) {
	fixed := strings.Join([]string{
		fileHeaderRecord(),
		entryRecord("22", "021000021", "123456789", "100", "R-1", "JOHN SMITH"),
	}, "\n")

	tests := []struct {
		name     string
		buf      string
		filename string
		want     models.FileType
	}{
		{"fixed-width by header record", fixed, "batch.ach", models.FileFixedWidth},
		{"tabular by extension", "anything,1,2\nrow,3,4", "payouts.csv", models.FileTabular},
		{"tabular by header words", "Payee Name,Amount\nJohn,5.00", "payouts.txt", models.FileTabular},
		{"unknown otherwise", "hello world", "upload.dat", models.FileUnknown},
		{"short first line is not fixed-width", "1x", "batch.dat", models.FileUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse([]byte(tt.buf), tt.filename)
			if result.FileType != tt.want {
				t.Errorf("file type = %q, want %q", result.FileType, tt.want)
			}
		})
	}
}

// Parsing the same buffer twice yields identical results.
func TestParseIdempotent(t *testing.T) {
	bufs := map[string]string{
		"fixed-width": strings.Join([]string{
			fileHeaderRecord(),
			batchHeaderRecord("ESCROW1234"),
			entryRecord("22", "021000021", "123456789", "123456", "DEAL-1", "JOHN SMITH"),
			entryRecord("22", "0210000XX", "123456789", "100", "DEAL-2", "BAD ROUTING"),
		}, "\n"),
		"tabular": "Payee,Amount,Reference\nJohn,\"$1,000.00\",D-1\nBad,-1,D-2\n",
	}

	for name, buf := range bufs {
		t.Run(name, func(t *testing.T) {
			first := Parse([]byte(buf), "f.dat")
			second := Parse([]byte(buf), "f.dat")
			if !reflect.DeepEqual(first, second) {
				t.Errorf("results differ:\n%+v\n%+v", first, second)
			}
		})
	}
}

func TestParseAmountCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1234.56", 123456, false},
		{"$1,234.56", 123456, false},
		{"£99.99", 9999, false},
		{"(50.00)", -5000, false},
		{"0.005", 1, false}, // rounds
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmountCents(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
