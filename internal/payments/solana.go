package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SolanaAdapter verifies Solana Pay style transfers: the payment reference is
// a throwaway public key included as a read-only account in the transfer, so
// getSignaturesForAddress on the reference finds the paying transaction.
// Over-payment is accepted (amount >= expected). Only finalized transactions
// count; anything short of finalized commitment is reported as not found.
type SolanaAdapter struct {
	RPCURL     string
	Timeout    time.Duration
	httpClient *http.Client
}

func NewSolanaAdapter(rpcURL string, timeout time.Duration) *SolanaAdapter {
	return &SolanaAdapter{
		RPCURL:     rpcURL,
		Timeout:    timeout,
		httpClient: http.DefaultClient,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

func (s *SolanaAdapter) rpcCall(ctx context.Context, method string, params []any, result any) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.RPCURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("solana rpc %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("solana rpc %s: http=%d body=%s", method, resp.StatusCode, string(raw))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("solana rpc %s decode: %w", method, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("solana rpc %s: code=%d %s", method, envelope.Error.Code, envelope.Error.Message)
	}

	return json.Unmarshal(envelope.Result, result)
}

func (s *SolanaAdapter) VerifyTransfer(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var signatures []struct {
		Signature string  `json:"signature"`
		Err       any     `json:"err"`
		Slot      uint64  `json:"slot"`
		Memo      *string `json:"memo"`
	}
	err := s.rpcCall(ctx, "getSignaturesForAddress", []any{
		req.Reference,
		map[string]any{"limit": 10, "commitment": "finalized"},
	}, &signatures)
	if err != nil {
		return VerifyResult{Status: StatusNotFound}, err
	}
	if len(signatures) == 0 {
		return VerifyResult{Status: StatusNotFound}, nil
	}

	best := VerifyResult{Status: StatusNotFound}
	for _, sig := range signatures {
		if sig.Err != nil {
			continue
		}

		var tx struct {
			Meta struct {
				Err          any     `json:"err"`
				PreBalances  []int64 `json:"preBalances"`
				PostBalances []int64 `json:"postBalances"`
			} `json:"meta"`
			Transaction struct {
				Message struct {
					AccountKeys []string `json:"accountKeys"`
				} `json:"message"`
			} `json:"transaction"`
		}
		err := s.rpcCall(ctx, "getTransaction", []any{
			sig.Signature,
			map[string]any{"commitment": "finalized", "encoding": "json", "maxSupportedTransactionVersion": 0},
		}, &tx)
		if err != nil {
			return best, err
		}
		if tx.Meta.Err != nil {
			continue
		}

		received := int64(0)
		for i, key := range tx.Transaction.Message.AccountKeys {
			if key != req.Recipient {
				continue
			}
			if i < len(tx.Meta.PreBalances) && i < len(tx.Meta.PostBalances) {
				received = tx.Meta.PostBalances[i] - tx.Meta.PreBalances[i]
			}
			break
		}
		if received <= 0 {
			continue
		}

		if received >= req.Amount {
			return VerifyResult{Status: StatusConfirmed, Signature: sig.Signature, Amount: received}, nil
		}
		best = VerifyResult{Status: StatusInsufficientAmount, Signature: sig.Signature, Amount: received}
	}

	return best, nil
}
