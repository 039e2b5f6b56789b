package payments

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func lightningStub(t *testing.T, wantMacaroon, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantMacaroon != "" {
			require.Equal(t, wantMacaroon, r.Header.Get("Grpc-Metadata-macaroon"))
		}
		fmt.Fprint(w, body)
	}))
}

func TestLightningAdapter_Settled(t *testing.T) {
	srv := lightningStub(t, "0201abcd", `{"state":"SETTLED","settled":true,"amt_paid_sat":"2500","r_hash":"abcd"}`)
	defer srv.Close()

	a := NewLightningAdapter(srv.URL, "0201abcd", 5*time.Second)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{Reference: "abcd", Amount: 2500})
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, res.Status)
	require.Equal(t, int64(2500), res.Amount)
}

func TestLightningAdapter_PendingStatesAreNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"open", `{"state":"OPEN","settled":false,"amt_paid_sat":"0"}`},
		{"hodl accepted", `{"state":"ACCEPTED","settled":false,"amt_paid_sat":"2500"}`},
		{"canceled", `{"state":"CANCELED","settled":false,"amt_paid_sat":"0"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := lightningStub(t, "", tc.body)
			defer srv.Close()

			a := NewLightningAdapter(srv.URL, "", 5*time.Second)
			res, err := a.VerifyTransfer(context.Background(), VerifyRequest{Reference: "abcd", Amount: 2500})
			require.NoError(t, err)
			require.Equal(t, StatusNotFound, res.Status)
		})
	}
}

func TestLightningAdapter_PartialSettleIsInsufficient(t *testing.T) {
	srv := lightningStub(t, "", `{"state":"SETTLED","settled":true,"amt_paid_sat":"1000","r_hash":"abcd"}`)
	defer srv.Close()

	a := NewLightningAdapter(srv.URL, "", 5*time.Second)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{Reference: "abcd", Amount: 2500})
	require.NoError(t, err)
	require.Equal(t, StatusInsufficientAmount, res.Status)
	require.Equal(t, int64(1000), res.Amount)
}

func TestLightningAdapter_UnknownInvoiceIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := NewLightningAdapter(srv.URL, "", 5*time.Second)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{Reference: "abcd", Amount: 2500})
	require.NoError(t, err)
	require.Equal(t, StatusNotFound, res.Status)
}

func TestLightningAdapter_UnreachableAPIIsError(t *testing.T) {
	srv := lightningStub(t, "", "{}")
	srv.Close()

	a := NewLightningAdapter(srv.URL, "", time.Second)
	_, err := a.VerifyTransfer(context.Background(), VerifyRequest{Reference: "abcd", Amount: 2500})
	require.Error(t, err)
}
