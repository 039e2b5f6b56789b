package payments

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"encoding/json"
)

// EthereumAdapter verifies transfers through an Etherscan-compatible account
// API: it lists inbound transactions for the recipient and matches the one
// whose calldata carries the payment reference tag. A transaction counts only
// once it has MinConfirmations blocks on top of it. Over-payment is accepted.
type EthereumAdapter struct {
	APIURL           string
	APIKey           string
	MinConfirmations int64
	Timeout          time.Duration
	httpClient       *http.Client
}

func NewEthereumAdapter(apiURL, apiKey string, minConfirmations int64, timeout time.Duration) *EthereumAdapter {
	return &EthereumAdapter{
		APIURL:           apiURL,
		APIKey:           apiKey,
		MinConfirmations: minConfirmations,
		Timeout:          timeout,
		httpClient:       http.DefaultClient,
	}
}

func (e *EthereumAdapter) VerifyTransfer(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("module", "account")
	q.Set("action", "txlist")
	q.Set("address", req.Recipient)
	q.Set("sort", "desc")
	if e.APIKey != "" {
		q.Set("apikey", e.APIKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.APIURL+"?"+q.Encode(), nil)
	if err != nil {
		return VerifyResult{Status: StatusNotFound}, err
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return VerifyResult{Status: StatusNotFound}, fmt.Errorf("ethereum txlist: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return VerifyResult{Status: StatusNotFound}, fmt.Errorf("ethereum txlist: http=%d body=%s", resp.StatusCode, string(raw))
	}

	var res struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Result  []struct {
			Hash          string `json:"hash"`
			To            string `json:"to"`
			Value         string `json:"value"`
			Input         string `json:"input"`
			IsError       string `json:"isError"`
			Confirmations string `json:"confirmations"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return VerifyResult{Status: StatusNotFound}, fmt.Errorf("ethereum txlist decode: %w body=%s", err, string(raw))
	}

	tag := strings.ToLower(strings.TrimPrefix(req.Reference, "0x"))
	best := VerifyResult{Status: StatusNotFound}

	for _, tx := range res.Result {
		if tx.IsError == "1" {
			continue
		}
		if !strings.EqualFold(tx.To, req.Recipient) {
			continue
		}
		if !strings.Contains(strings.ToLower(tx.Input), tag) {
			continue
		}

		confirmations, ok := new(big.Int).SetString(tx.Confirmations, 10)
		if !ok || confirmations.Int64() < e.MinConfirmations {
			// Tagged transfer exists but is not final yet.
			continue
		}

		value, ok := new(big.Int).SetString(tx.Value, 10)
		if !ok {
			continue
		}
		expected := big.NewInt(req.Amount)

		if value.Cmp(expected) >= 0 {
			return VerifyResult{Status: StatusConfirmed, Signature: tx.Hash, Amount: bounded(value)}, nil
		}
		best = VerifyResult{Status: StatusInsufficientAmount, Signature: tx.Hash, Amount: bounded(value)}
	}

	return best, nil
}

func bounded(v *big.Int) int64 {
	if !v.IsInt64() {
		return -1
	}
	return v.Int64()
}
