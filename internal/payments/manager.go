package payments

import (
	"context"
	"fmt"
	"sort"
)

type VerifierManager struct {
	verifiers map[Chain]ChainVerifier
}

func NewVerifierManager() *VerifierManager {
	return &VerifierManager{verifiers: make(map[Chain]ChainVerifier)}
}

func (m *VerifierManager) Register(chain Chain, verifier ChainVerifier) {
	m.verifiers[chain] = verifier
}

// Chains returns the registered chains in stable order.
func (m *VerifierManager) Chains() []Chain {
	chains := make([]Chain, 0, len(m.verifiers))
	for c := range m.verifiers {
		chains = append(chains, c)
	}
	sort.Slice(chains, func(i, j int) bool { return chains[i] < chains[j] })
	return chains
}

func (m *VerifierManager) VerifyTransfer(ctx context.Context, chain Chain, req VerifyRequest) (VerifyResult, error) {
	verifier, ok := m.verifiers[chain]
	if !ok {
		return VerifyResult{}, fmt.Errorf("verifier not registered: %s", chain)
	}
	return verifier.VerifyTransfer(ctx, req)
}
