package csvfmt

import (
	"reflect"
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"plain field untouched", "John Smith", "John Smith"},
		{"comma forces quoting", "Smith, John", `"Smith, John"`},
		{"quote is doubled", `the "best" title`, `"the ""best"" title"`},
		{"newline forces quoting", "line1\nline2", "\"line1\nline2\""},
		{"empty field untouched", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.field); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "simple fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted field with comma",
			line: `John Smith,"$1,234.56",DEAL-1`,
			want: []string{"John Smith", "$1,234.56", "DEAL-1"},
		},
		{
			name: "doubled quote decodes to one",
			line: `"He said ""ok""",x`,
			want: []string{`He said "ok"`, "x"},
		},
		{
			name: "trailing empty field",
			line: "a,b,",
			want: []string{"a", "b", ""},
		},
		{
			name: "single field",
			line: "only",
			want: []string{"only"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitRow(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

// Encoding then splitting must reproduce the original fields exactly; the
// reconciliation exports rely on this to stay re-ingestable.
func TestQuoteRoundTrip(t *testing.T) {
	fields := []string{
		`Smith, John & "Sons"`,
		"plain",
		"$1,234.56",
		"multi\nline",
		"",
	}

	got := SplitRow(JoinRow(fields))
	if !reflect.DeepEqual(got, fields) {
		t.Errorf("round trip changed fields:\n got %#v\nwant %#v", got, fields)
	}
}
