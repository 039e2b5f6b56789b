package gate

import (
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"paygate/internal/payments"
)

func TestNewReference_SolanaIsBase58Pubkey(t *testing.T) {
	ref, err := NewReference(payments.ChainSolana)
	require.NoError(t, err)

	decoded, err := base58.Decode(ref)
	require.NoError(t, err)
	require.Len(t, decoded, 32)
}

func TestNewReference_HexTagChains(t *testing.T) {
	for _, chain := range []payments.Chain{payments.ChainEthereum, payments.ChainBitcoin, payments.ChainLightning} {
		ref, err := NewReference(chain)
		require.NoError(t, err, chain)

		decoded, err := hex.DecodeString(ref)
		require.NoError(t, err, chain)
		require.Len(t, decoded, 32, chain)
	}
}

func TestNewReference_UnknownChainRejected(t *testing.T) {
	_, err := NewReference(payments.Chain("dogecoin"))
	require.Error(t, err)
}

func TestNewReference_Unique(t *testing.T) {
	a, err := NewReference(payments.ChainEthereum)
	require.NoError(t, err)
	b, err := NewReference(payments.ChainEthereum)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
