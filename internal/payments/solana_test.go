package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testRecipient = "DRpbCBMxVnDK7maPM5tGv6MvB3v1sRMC86PZ8okm21hy"
	testReference = "4Nd1mYvH6QDeivUQfbeZvP1cJsvWnqEZHYvrKdjGDJ2f"
)

func solanaStub(t *testing.T, received int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch req.Method {
		case "getSignaturesForAddress":
			fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":[{"signature":"5tx","err":null,"slot":100}]}`)
		case "getTransaction":
			resp := map[string]any{
				"jsonrpc": "2.0", "id": 1,
				"result": map[string]any{
					"meta": map[string]any{
						"err":          nil,
						"preBalances":  []int64{1000000000, 0},
						"postBalances": []int64{1000000000 - received, received},
					},
					"transaction": map[string]any{
						"message": map[string]any{
							"accountKeys": []string{"payer111", testRecipient},
						},
					},
				},
			}
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		default:
			t.Fatalf("unexpected rpc method %s", req.Method)
		}
	}))
}

func TestSolanaAdapter_Confirmed(t *testing.T) {
	srv := solanaStub(t, 500_000)
	defer srv.Close()

	a := NewSolanaAdapter(srv.URL, 5*time.Second)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{
		Reference: testReference,
		Amount:    500_000,
		Recipient: testRecipient,
	})
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, res.Status)
	require.Equal(t, "5tx", res.Signature)
	require.Equal(t, int64(500_000), res.Amount)
}

func TestSolanaAdapter_Insufficient(t *testing.T) {
	srv := solanaStub(t, 400_000)
	defer srv.Close()

	a := NewSolanaAdapter(srv.URL, 5*time.Second)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{
		Reference: testReference,
		Amount:    500_000,
		Recipient: testRecipient,
	})
	require.NoError(t, err)
	require.Equal(t, StatusInsufficientAmount, res.Status)
	require.Equal(t, int64(400_000), res.Amount)
}

func TestSolanaAdapter_NoSignatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":[]}`)
	}))
	defer srv.Close()

	a := NewSolanaAdapter(srv.URL, 5*time.Second)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{Reference: testReference, Amount: 1, Recipient: testRecipient})
	require.NoError(t, err)
	require.Equal(t, StatusNotFound, res.Status)
}

func TestSolanaAdapter_UnreachableRPCIsError(t *testing.T) {
	a := NewSolanaAdapter("http://127.0.0.1:1", 500*time.Millisecond)
	res, err := a.VerifyTransfer(context.Background(), VerifyRequest{Reference: testReference, Amount: 1, Recipient: testRecipient})
	require.Error(t, err)
	require.Equal(t, StatusNotFound, res.Status)
}
