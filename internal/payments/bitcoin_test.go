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

const (
	btcRecipient = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
	btcReference = "a3f1c9d87e5b42a0915f6c3d8e2b7a4c1d0e9f8b7a6c5d4e3f2a1b0c9d8e7f6a"
)

func bitcoinStub(value int64, confirmed bool, blockHeight int64) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/tip/height", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "800010")
	})
	mux.HandleFunc("/address/"+btcRecipient+"/txs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{
			"txid": "deadbeef",
			"status": {"confirmed": %t, "block_height": %d},
			"vout": [
				{"scriptpubkey": "6a20%s", "scriptpubkey_type": "op_return", "value": 0},
				{"scriptpubkey": "0014...", "scriptpubkey_type": "v0_p2wpkh", "scriptpubkey_address": %q, "value": %d}
			]
		}]`, confirmed, blockHeight, btcReference, btcRecipient, value)
	})
	return httptest.NewServer(mux)
}

func TestBitcoinAdapter_Confirmed(t *testing.T) {
	srv := bitcoinStub(150_000, true, 800_005)
	defer srv.Close()

	a := NewBitcoinAdapter(srv.URL, 2, 5*time.Second)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{
		Reference: btcReference,
		Amount:    150_000,
		Recipient: btcRecipient,
	})
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, res.Status)
	require.Equal(t, "deadbeef", res.Signature)
}

func TestBitcoinAdapter_ExactMatchRequired(t *testing.T) {
	srv := bitcoinStub(151_000, true, 800_005)
	defer srv.Close()

	a := NewBitcoinAdapter(srv.URL, 2, 5*time.Second)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{
		Reference: btcReference,
		Amount:    150_000,
		Recipient: btcRecipient,
	})
	require.NoError(t, err)
	require.Equal(t, StatusAmountMismatch, res.Status)
}

func TestBitcoinAdapter_UnconfirmedIsNotFound(t *testing.T) {
	srv := bitcoinStub(150_000, false, 0)
	defer srv.Close()

	a := NewBitcoinAdapter(srv.URL, 2, 5*time.Second)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{
		Reference: btcReference,
		Amount:    150_000,
		Recipient: btcRecipient,
	})
	require.NoError(t, err)
	require.Equal(t, StatusNotFound, res.Status)
}

func TestBitcoinAdapter_UnreachableAPIIsError(t *testing.T) {
	srv := bitcoinStub(150_000, true, 800_005)
	srv.Close()

	a := NewBitcoinAdapter(srv.URL, 2, time.Second)
	_, err := a.VerifyTransfer(context.Background(), VerifyRequest{
		Reference: btcReference,
		Amount:    150_000,
		Recipient: btcRecipient,
	})
	require.Error(t, err)
}
