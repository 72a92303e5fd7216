// Package provider abstracts the external payment-rail collaborator: one
// operation to tokenize raw bank details into an opaque account reference,
// one to initiate a transfer to that reference, and one to query transfer
// status. Both mutating operations take caller-supplied idempotency keys.
package provider

import (
	"context"
	"errors"

	"github.com/titleflow/wire-batch-pipeline/internal/models"
)

// Sentinel rejection classes, so callers can distinguish a bad destination
// from a declined transfer when deciding what to tell the operator.
var (
	ErrAccountRejected  = errors.New("destination account rejected")
	ErrTransferRejected = errors.New("transfer rejected")
)

// ExternalAccountRequest tokenizes one destination bank account.
type ExternalAccountRequest struct {
	PayeeName      string                 `json:"payeeName"`
	RoutingNumber  string                 `json:"routingNumber"`
	AccountNumber  string                 `json:"accountNumber"`
	AccountType    models.AccountCategory `json:"accountType,omitempty"`
	IdempotencyKey string                 `json:"-"`
}

// ExternalAccount is the provider's opaque reference for a tokenized account.
type ExternalAccount struct {
	ID string `json:"id"`
}

// TransferRequest initiates one payout from a funding source to a tokenized
// destination over a named rail.
type TransferRequest struct {
	FundingSourceID   string      `json:"fundingSourceId"`
	ExternalAccountID string      `json:"externalAccountId"`
	AmountCents       int64       `json:"amountCents"`
	Currency          string      `json:"currency"`
	Rail              models.Rail `json:"rail"`
	Reference         string      `json:"reference"`
	IdempotencyKey    string      `json:"-"`
}

// Transfer is the provider's record of an initiated payout.
type Transfer struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Client is the pipeline's view of the payment-rail provider. It is passed
// into the executor at call time so tests and deployments can substitute it.
type Client interface {
	CreateExternalAccount(ctx context.Context, req ExternalAccountRequest) (ExternalAccount, error)
	CreateTransfer(ctx context.Context, req TransferRequest) (Transfer, error)
	TransferStatus(ctx context.Context, transferID string) (string, error)
}
