package payments

import "context"

// ChainVerifier confirms that a transfer tagged with a reference has landed on
// one chain. Implementations enforce their chain's finality rules before
// reporting StatusConfirmed; unconfirmed on-chain state is StatusNotFound.
// Transport failures are returned as errors so callers can treat them as
// retryable rather than as a verification verdict.
type ChainVerifier interface {
	VerifyTransfer(ctx context.Context, req VerifyRequest) (VerifyResult, error)
}
