package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPClientSendsIdempotencyKey(t *testing.T) {
	var gotKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(ExternalAccount{ID: "ea-1"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret")
	acct, err := client.CreateExternalAccount(context.Background(), ExternalAccountRequest{
		PayeeName:      "John Smith",
		RoutingNumber:  "021000021",
		AccountNumber:  "123456789",
		IdempotencyKey: "acct-b1-2-DEAL-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.ID != "ea-1" {
		t.Errorf("account id = %q", acct.ID)
	}
	if gotKey != "acct-b1-2-DEAL-1" {
		t.Errorf("idempotency key = %q", gotKey)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("authorization = %q", gotAuth)
	}
}

func TestHTTPClientSurfacesProviderMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "insufficient funds in source"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")
	_, err := client.CreateTransfer(context.Background(), TransferRequest{
		FundingSourceID:   "fs-1",
		ExternalAccountID: "ea-1",
		AmountCents:       100,
		IdempotencyKey:    "xfer-1",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrTransferRejected) {
		t.Errorf("error class = %v", err)
	}
	if want := "insufficient funds in source"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not carry provider message", err)
	}
}

func TestHTTPClientTransferStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transfers/tr-9" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Transfer{ID: "tr-9", Status: "processed"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")
	status, err := client.TransferStatus(context.Background(), "tr-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "processed" {
		t.Errorf("status = %q", status)
	}
}
