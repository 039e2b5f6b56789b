package payments

type Chain string

const (
	ChainSolana    Chain = "solana"
	ChainEthereum  Chain = "ethereum"
	ChainBitcoin   Chain = "bitcoin"
	ChainLightning Chain = "lightning"
)

func (c Chain) Valid() bool {
	switch c {
	case ChainSolana, ChainEthereum, ChainBitcoin, ChainLightning:
		return true
	}
	return false
}

type VerifyStatus string

const (
	StatusConfirmed          VerifyStatus = "confirmed"
	StatusNotFound           VerifyStatus = "not_found"
	StatusInsufficientAmount VerifyStatus = "insufficient_amount"
	StatusAmountMismatch     VerifyStatus = "amount_mismatch"
)

// VerifyRequest identifies a single expected transfer.
type VerifyRequest struct {
	Reference string // per-chain: base58 pubkey, hex tag, or payment hash
	Amount    int64  // chain base units (lamports, wei-gwei, sats)
	Recipient string
}

type VerifyResult struct {
	Status    VerifyStatus
	Signature string // transaction signature/hash when confirmed
	Amount    int64  // observed amount, when a transfer was located
}

// PaymentOption is one entry of a 402 challenge. Chain is the discriminator:
// solana carries a base58 reference pubkey, ethereum and bitcoin a hex tag,
// lightning an invoice payment hash (no recipient address).
type PaymentOption struct {
	Chain     Chain  `json:"chain"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Recipient string `json:"recipient,omitempty"`
	Reference string `json:"reference,omitempty"`
	Invoice   string `json:"invoice,omitempty"`
}
