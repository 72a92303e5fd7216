package models

import "time"

// FileType identifies the source file format of an uploaded batch.
type FileType string

const (
	FileFixedWidth FileType = "fixed-width"
	FileTabular    FileType = "tabular"
	FileUnknown    FileType = "unknown"
)

// AccountCategory is the destination account type, when the source supplies it.
type AccountCategory string

const (
	AccountChecking AccountCategory = "checking"
	AccountSavings  AccountCategory = "savings"
)

// Rail is the settlement network a payout clears over.
type Rail string

const (
	// RailWire is the same-day high-value rail.
	RailWire Rail = "wire"
	// RailRTP is the near-real-time small-value rail.
	RailRTP Rail = "rtp"
	// RailACH is the fallback small-value rail when RTP is unavailable.
	RailACH Rail = "ach"
)

// ParsedPayoutItem is one disbursement instruction extracted from a batch file.
//
// AmountCents is always positive for items that reach the item list.
// RoutingNumber and AccountNumber may be empty only for tabular sources that
// omit bank details; such items are skipped at execution time.
type ParsedPayoutItem struct {
	LineNumber    int             `json:"lineNumber"`
	PayeeName     string          `json:"payeeName"`
	RoutingNumber string          `json:"routingNumber"`
	AccountNumber string          `json:"accountNumber"`
	AmountCents   int64           `json:"amountCents"`
	Reference     string          `json:"reference"`
	AccountType   AccountCategory `json:"accountType,omitempty"`
	Memo          string          `json:"memo,omitempty"`
	RawLine       string          `json:"rawLine,omitempty"` // verbatim source line, for diagnostics
}

// AmountDollars returns the decimal-dollar view of the amount.
func (it ParsedPayoutItem) AmountDollars() float64 {
	return float64(it.AmountCents) / 100
}

// HasBankDetails reports whether the item carries both routing and account
// numbers and can therefore be executed.
func (it ParsedPayoutItem) HasBankDetails() bool {
	return it.RoutingNumber != "" && it.AccountNumber != ""
}

// ParseError is a line-scoped problem found while parsing or validating.
type ParseError struct {
	LineNumber int    `json:"lineNumber"`
	Message    string `json:"message"`
	RawLine    string `json:"rawLine,omitempty"`
}

// ParseResult is the outcome of parsing one uploaded batch file.
// It is constructed once per upload and never mutated afterwards.
type ParseResult struct {
	// Success is false only for document-scoped failures: an unrecognized
	// format or missing mandatory columns. Line-scoped errors leave it true.
	Success  bool              `json:"success"`
	FileType FileType          `json:"fileType"`
	Items    []ParsedPayoutItem `json:"items"`
	Errors   []ParseError      `json:"errors,omitempty"`
	// Warnings surface column-mapping ambiguity in tabular files.
	Warnings         []string `json:"warnings,omitempty"`
	ItemCount        int      `json:"itemCount"`
	TotalAmountCents int64    `json:"totalAmountCents"`
}

// TotalDollars returns the decimal-dollar view of the batch total.
func (r ParseResult) TotalDollars() float64 {
	return float64(r.TotalAmountCents) / 100
}

// ValidationSummary partitions a parsed batch by rail without executing it.
type ValidationSummary struct {
	LargeValueCount  int   `json:"largeValueCount"`
	LargeValueCents  int64 `json:"largeValueCents"`
	SmallValueCount  int   `json:"smallValueCount"`
	SmallValueCents  int64 `json:"smallValueCents"`
	// SmallValueRail is the rail label small-value items will actually clear
	// over (rtp, or ach when the real-time rail is disabled).
	SmallValueRail     Rail         `json:"smallValueRail"`
	MissingBankDetails int          `json:"missingBankDetails"`
	Errors             []ParseError `json:"errors,omitempty"`
}

// PayoutStatus is the terminal state of one attempted payout.
type PayoutStatus string

const (
	StatusSuccess PayoutStatus = "success"
	StatusFailed  PayoutStatus = "failed"
	StatusPending PayoutStatus = "pending"
	StatusSkipped PayoutStatus = "skipped"
)

// PayoutResult records the outcome of one item in an execution pass. It is
// the unit of truth for reconciliation and the sole input for a retry pass.
type PayoutResult struct {
	LineNumber        int          `json:"lineNumber"`
	Reference         string       `json:"reference"`
	PayeeName         string       `json:"payeeName"`
	AmountCents       int64        `json:"amountCents"`
	Rail              Rail         `json:"rail"`
	Status            PayoutStatus `json:"status"`
	TransferID        string       `json:"transferId,omitempty"`
	ExternalAccountID string       `json:"externalAccountId,omitempty"`
	ErrorMessage      string       `json:"errorMessage,omitempty"`
	CompletedAt       time.Time    `json:"completedAt"`
}

// AmountDollars returns the decimal-dollar view of the amount.
func (r PayoutResult) AmountDollars() float64 {
	return float64(r.AmountCents) / 100
}

// BatchPayoutResult is the outcome of one execution pass over a batch.
type BatchPayoutResult struct {
	BatchID string `json:"batchId"`
	// Success is true only when nothing failed and at least one item was
	// actually attempted.
	Success          bool           `json:"success"`
	TotalProcessed   int            `json:"totalProcessed"`
	SuccessCount     int            `json:"successCount"`
	FailedCount      int            `json:"failedCount"`
	SkippedCount     int            `json:"skippedCount"`
	TotalAmountCents int64          `json:"totalAmountCents"`
	Results          []PayoutResult `json:"results"`
	// CanRetry is true iff at least one item failed; a failed pass is itself
	// a valid input to a retry pass.
	CanRetry bool `json:"canRetry"`
}
