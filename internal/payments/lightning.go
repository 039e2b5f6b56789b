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

// LightningAdapter verifies invoice settlement through an LND REST endpoint.
// The payment reference is the invoice payment hash (hex). An invoice fixes
// its own amount, so settlement of a smaller amount (partial/MPP edge cases)
// is reported as insufficient.
type LightningAdapter struct {
	BaseURL  string
	Macaroon string
	Timeout  time.Duration

	httpClient *http.Client
}

func NewLightningAdapter(baseURL, macaroon string, timeout time.Duration) *LightningAdapter {
	return &LightningAdapter{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Macaroon:   macaroon,
		Timeout:    timeout,
		httpClient: http.DefaultClient,
	}
}

func (l *LightningAdapter) VerifyTransfer(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL+"/v1/invoice/"+req.Reference, nil)
	if err != nil {
		return VerifyResult{Status: StatusNotFound}, err
	}
	if l.Macaroon != "" {
		httpReq.Header.Set("Grpc-Metadata-macaroon", l.Macaroon)
	}

	resp, err := l.httpClient.Do(httpReq)
	if err != nil {
		return VerifyResult{Status: StatusNotFound}, fmt.Errorf("lightning lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return VerifyResult{Status: StatusNotFound}, nil
	}

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return VerifyResult{Status: StatusNotFound}, fmt.Errorf("lightning lookup: http=%d body=%s", resp.StatusCode, string(raw))
	}

	var res struct {
		State      string `json:"state"` // OPEN, SETTLED, CANCELED, ACCEPTED
		Settled    bool   `json:"settled"`
		AmtPaidSat string `json:"amt_paid_sat"`
		RHash      string `json:"r_hash"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return VerifyResult{Status: StatusNotFound}, fmt.Errorf("lightning lookup decode: %w body=%s", err, string(raw))
	}

	// ACCEPTED (hodl) and OPEN are pending, CANCELED will never settle; both
	// map to not found so the caller keeps or abandons the same reference.
	if !res.Settled && !strings.EqualFold(res.State, "SETTLED") {
		return VerifyResult{Status: StatusNotFound}, nil
	}

	paid, err := strconv.ParseInt(res.AmtPaidSat, 10, 64)
	if err != nil {
		return VerifyResult{Status: StatusNotFound}, fmt.Errorf("lightning amount parse: %w", err)
	}

	if paid < req.Amount {
		return VerifyResult{Status: StatusInsufficientAmount, Signature: req.Reference, Amount: paid}, nil
	}

	return VerifyResult{Status: StatusConfirmed, Signature: req.Reference, Amount: paid}, nil
}
