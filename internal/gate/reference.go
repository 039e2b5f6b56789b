package gate

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"

	"paygate/internal/payments"
)

// NewReference generates a fresh per-chain correlation id. Solana follows the
// Solana Pay convention of a throwaway ed25519 public key in base58; the
// other chains use a random 32-byte hex tag (carried in calldata, OP_RETURN,
// or as the invoice payment hash).
func NewReference(chain payments.Chain) (string, error) {
	if !chain.Valid() {
		return "", fmt.Errorf("unsupported chain: %s", chain)
	}

	if chain == payments.ChainSolana {
		pub, _, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return "", fmt.Errorf("generate solana reference: %w", err)
		}
		return base58.Encode(pub), nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reference: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
