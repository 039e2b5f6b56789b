package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// BitcoinAdapter verifies transfers through an Esplora-style REST API
// (blockstream.info compatible). The payment reference travels in an
// OP_RETURN output alongside the payment output. Bitcoin is an exact-match
// chain here: the tagged output must carry exactly the expected amount, a
// different amount is reported as an amount mismatch.
type BitcoinAdapter struct {
	BaseURL          string
	MinConfirmations int64
	Timeout          time.Duration
	httpClient       *http.Client
}

func NewBitcoinAdapter(baseURL string, minConfirmations int64, timeout time.Duration) *BitcoinAdapter {
	return &BitcoinAdapter{
		BaseURL:          strings.TrimRight(baseURL, "/"),
		MinConfirmations: minConfirmations,
		Timeout:          timeout,
		httpClient:       http.DefaultClient,
	}
}

func (b *BitcoinAdapter) get(ctx context.Context, path string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("bitcoin api %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bitcoin api %s: http=%d body=%s", path, resp.StatusCode, string(raw))
	}
	return raw, nil
}

type esploraTx struct {
	TxID   string `json:"txid"`
	Status struct {
		Confirmed   bool  `json:"confirmed"`
		BlockHeight int64 `json:"block_height"`
	} `json:"status"`
	Vout []struct {
		ScriptPubKey        string `json:"scriptpubkey"`
		ScriptPubKeyType    string `json:"scriptpubkey_type"`
		ScriptPubKeyAddress string `json:"scriptpubkey_address"`
		Value               int64  `json:"value"`
	} `json:"vout"`
}

func (b *BitcoinAdapter) VerifyTransfer(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	raw, err := b.get(ctx, "/blocks/tip/height")
	if err != nil {
		return VerifyResult{Status: StatusNotFound}, err
	}
	tipHeight, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return VerifyResult{Status: StatusNotFound}, fmt.Errorf("bitcoin tip height: %w", err)
	}

	raw, err = b.get(ctx, "/address/"+req.Recipient+"/txs")
	if err != nil {
		return VerifyResult{Status: StatusNotFound}, err
	}

	var txs []esploraTx
	if err := json.Unmarshal(raw, &txs); err != nil {
		return VerifyResult{Status: StatusNotFound}, fmt.Errorf("bitcoin txs decode: %w", err)
	}

	tag := strings.ToLower(strings.TrimPrefix(req.Reference, "0x"))
	best := VerifyResult{Status: StatusNotFound}

	for _, tx := range txs {
		tagged := false
		paid := int64(0)
		for _, out := range tx.Vout {
			if out.ScriptPubKeyType == "op_return" && strings.Contains(strings.ToLower(out.ScriptPubKey), tag) {
				tagged = true
			}
			if out.ScriptPubKeyAddress == req.Recipient {
				paid += out.Value
			}
		}
		if !tagged || paid == 0 {
			continue
		}

		if !tx.Status.Confirmed || tipHeight-tx.Status.BlockHeight+1 < b.MinConfirmations {
			// Tagged transfer seen but not final yet.
			continue
		}

		if paid == req.Amount {
			return VerifyResult{Status: StatusConfirmed, Signature: tx.TxID, Amount: paid}, nil
		}
		if paid < req.Amount {
			best = VerifyResult{Status: StatusInsufficientAmount, Signature: tx.TxID, Amount: paid}
		} else {
			best = VerifyResult{Status: StatusAmountMismatch, Signature: tx.TxID, Amount: paid}
		}
	}

	return best, nil
}
