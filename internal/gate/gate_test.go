package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paygate/internal/domain/accessgrants"
	"paygate/internal/domain/paymentrecords"
	"paygate/internal/domain/services"
	"paygate/internal/payments"
)

type fakeServices struct {
	bySlug map[string]*services.Service
}

func (f *fakeServices) GetBySlug(ctx context.Context, slug string) (*services.Service, error) {
	return f.bySlug[slug], nil
}

func (f *fakeServices) List(ctx context.Context) ([]services.Service, error) {
	var out []services.Service
	for _, s := range f.bySlug {
		out = append(out, *s)
	}
	return out, nil
}

type fakeRecords struct {
	byID map[string]*paymentrecords.PaymentRecord
	seq  int64
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{byID: make(map[string]*paymentrecords.PaymentRecord)}
}

func (f *fakeRecords) Create(ctx context.Context, r *paymentrecords.PaymentRecord) error {
	f.seq++
	r.Seq = f.seq
	r.Status = paymentrecords.StatusPending
	r.CreatedAt = time.Now()
	f.byID[r.ID] = r
	return nil
}

func (f *fakeRecords) GetByID(ctx context.Context, id string) (*paymentrecords.PaymentRecord, error) {
	return f.byID[id], nil
}

func (f *fakeRecords) MarkConfirmed(ctx context.Context, id, chain, signature, receipt string) error {
	r, ok := f.byID[id]
	if !ok || r.Status != paymentrecords.StatusPending {
		return paymentrecords.ErrInvalidTransition
	}
	now := time.Now()
	r.Status = paymentrecords.StatusConfirmed
	r.Chain = &chain
	r.Signature = &signature
	r.Receipt = &receipt
	r.ConfirmedAt = &now
	return nil
}

func (f *fakeRecords) MarkFailed(ctx context.Context, id string) error {
	r, ok := f.byID[id]
	if !ok || r.Status != paymentrecords.StatusPending {
		return paymentrecords.ErrInvalidTransition
	}
	r.Status = paymentrecords.StatusFailed
	return nil
}

func (f *fakeRecords) AttachWallet(ctx context.Context, id, wallet string) error {
	if r, ok := f.byID[id]; ok && r.WalletAddress == nil {
		r.WalletAddress = &wallet
	}
	return nil
}

func (f *fakeRecords) List(ctx context.Context, limit, offset int) ([]paymentrecords.PaymentRecord, error) {
	return nil, nil
}

func (f *fakeRecords) Count(ctx context.Context) (int, error) { return len(f.byID), nil }

type fakeGrants struct {
	byKey map[string]*accessgrants.AccessGrant
}

func newFakeGrants() *fakeGrants {
	return &fakeGrants{byKey: make(map[string]*accessgrants.AccessGrant)}
}

func (f *fakeGrants) Upsert(ctx context.Context, g *accessgrants.AccessGrant) error {
	g.GrantedAt = time.Now()
	f.byKey[g.WalletAddress+"/"+g.ServiceSlug] = g
	return nil
}

func (f *fakeGrants) Get(ctx context.Context, wallet, slug string) (*accessgrants.AccessGrant, error) {
	return f.byKey[wallet+"/"+slug], nil
}

func (f *fakeGrants) List(ctx context.Context, limit, offset int) ([]accessgrants.AccessGrant, error) {
	return nil, nil
}

func (f *fakeGrants) Count(ctx context.Context) (int, error) { return len(f.byKey), nil }

type scriptedVerifier struct {
	result payments.VerifyResult
	err    error
	calls  int
}

func (s *scriptedVerifier) VerifyTransfer(ctx context.Context, req payments.VerifyRequest) (payments.VerifyResult, error) {
	s.calls++
	return s.result, s.err
}

const wallet = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

func newTestGate(t *testing.T, verifier payments.ChainVerifier) (*Gate, *fakeRecords, *fakeGrants) {
	t.Helper()

	svcs := &fakeServices{bySlug: map[string]*services.Service{
		"all-pricing": {
			Slug:        "all-pricing",
			Name:        "Full pricing catalog",
			PriceCents:  9900,
			Currency:    "USD",
			ServiceType: services.TypeOneTime,
			Active:      true,
		},
	}}
	records := newFakeRecords()
	grants := newFakeGrants()

	manager := payments.NewVerifierManager()
	manager.Register(payments.ChainSolana, verifier)
	manager.Register(payments.ChainBitcoin, verifier)

	g, err := New(Config{
		Recipients: map[payments.Chain]string{
			payments.ChainSolana:  "DRpbCBMxVnDK7maPM5tGv6MvB3v1sRMC86PZ8okm21hy",
			payments.ChainBitcoin: "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		},
		UnitRates: map[payments.Chain]int64{
			payments.ChainSolana:  5000,
			payments.ChainBitcoin: 15,
		},
		OptionTTL:   20 * time.Minute,
		ReceiptSalt: "test",
	}, svcs, records, grants, manager, zap.NewNop().Sugar())
	require.NoError(t, err)

	return g, records, grants
}

func TestAuthorize_FreshCallerGetsChallenge(t *testing.T) {
	g, records, _ := newTestGate(t, &scriptedVerifier{})

	d, err := g.Authorize(context.Background(), Caller{}, "all-pricing")
	require.NoError(t, err)
	require.False(t, d.Authorized)
	require.NotNil(t, d.Challenge)
	require.NotEmpty(t, d.Challenge.PaymentID)
	require.Len(t, d.Challenge.Options, 2)
	require.True(t, d.Challenge.ExpiresAt.After(time.Now()))

	rec := records.byID[d.Challenge.PaymentID]
	require.NotNil(t, rec)
	require.Equal(t, paymentrecords.StatusPending, rec.Status)
	require.Len(t, rec.References, 2)
	for _, opt := range d.Challenge.Options {
		require.NotEmpty(t, opt.Reference)
		require.Positive(t, opt.Amount)
	}
}

func TestAuthorize_UnknownService(t *testing.T) {
	g, _, _ := newTestGate(t, &scriptedVerifier{})

	_, err := g.Authorize(context.Background(), Caller{}, "nope")
	require.ErrorIs(t, err, ErrUnknownService)
}

func TestAuthorize_ExistingGrantSkipsVerifier(t *testing.T) {
	verifier := &scriptedVerifier{}
	g, _, grants := newTestGate(t, verifier)

	require.NoError(t, grants.Upsert(context.Background(), &accessgrants.AccessGrant{
		WalletAddress: wallet,
		ServiceSlug:   "all-pricing",
		ServiceType:   services.TypeOneTime,
	}))

	for i := 0; i < 3; i++ {
		d, err := g.Authorize(context.Background(), Caller{WalletAddress: wallet}, "all-pricing")
		require.NoError(t, err)
		require.True(t, d.Authorized)
	}
	require.Zero(t, verifier.calls)
}

func TestAuthorize_ExpiredGrantChallenges(t *testing.T) {
	g, _, grants := newTestGate(t, &scriptedVerifier{})

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, grants.Upsert(context.Background(), &accessgrants.AccessGrant{
		WalletAddress: wallet,
		ServiceSlug:   "all-pricing",
		ServiceType:   services.TypeSubscription,
		ExpiresAt:     &expired,
	}))

	d, err := g.Authorize(context.Background(), Caller{WalletAddress: wallet}, "all-pricing")
	require.NoError(t, err)
	require.False(t, d.Authorized)
	require.NotNil(t, d.Challenge)
}

func TestAuthorize_PendingUnpaidKeepsSameChallenge(t *testing.T) {
	verifier := &scriptedVerifier{result: payments.VerifyResult{Status: payments.StatusNotFound}}
	g, records, _ := newTestGate(t, verifier)

	first, err := g.Authorize(context.Background(), Caller{}, "all-pricing")
	require.NoError(t, err)
	paymentID := first.Challenge.PaymentID

	second, err := g.Authorize(context.Background(), Caller{PaymentID: paymentID}, "all-pricing")
	require.NoError(t, err)
	require.False(t, second.Authorized)
	require.Equal(t, paymentID, second.Challenge.PaymentID, "retry must not mint a new payment id")
	require.Equal(t, first.Challenge.Options, second.Challenge.Options)
	require.Equal(t, paymentrecords.StatusPending, records.byID[paymentID].Status)
	require.Positive(t, verifier.calls)
}

func TestAuthorize_LapsedChallengeIsReissuedFresh(t *testing.T) {
	verifier := &scriptedVerifier{result: payments.VerifyResult{Status: payments.StatusNotFound}}
	g, records, _ := newTestGate(t, verifier)

	first, err := g.Authorize(context.Background(), Caller{}, "all-pricing")
	require.NoError(t, err)
	paymentID := first.Challenge.PaymentID

	records.byID[paymentID].ExpiresAt = time.Now().Add(-time.Minute)

	second, err := g.Authorize(context.Background(), Caller{PaymentID: paymentID}, "all-pricing")
	require.NoError(t, err)
	require.False(t, second.Authorized)
	require.NotEqual(t, paymentID, second.Challenge.PaymentID)
	require.True(t, second.Challenge.ExpiresAt.After(time.Now()))
}

func TestAuthorize_VerifierErrorIsRetryable(t *testing.T) {
	verifier := &scriptedVerifier{err: errors.New("rpc timeout")}
	g, records, _ := newTestGate(t, verifier)

	first, err := g.Authorize(context.Background(), Caller{}, "all-pricing")
	require.NoError(t, err)
	paymentID := first.Challenge.PaymentID

	d, err := g.Authorize(context.Background(), Caller{PaymentID: paymentID}, "all-pricing")
	require.NoError(t, err)
	require.False(t, d.Authorized)
	require.Equal(t, paymentID, d.Challenge.PaymentID)
	require.Equal(t, paymentrecords.StatusPending, records.byID[paymentID].Status)
}

func TestAuthorize_ConfirmationGrantsAccess(t *testing.T) {
	verifier := &scriptedVerifier{result: payments.VerifyResult{Status: payments.StatusConfirmed, Signature: "5tx", Amount: 495000}}
	g, records, grants := newTestGate(t, verifier)

	first, err := g.Authorize(context.Background(), Caller{}, "all-pricing")
	require.NoError(t, err)
	paymentID := first.Challenge.PaymentID

	d, err := g.Authorize(context.Background(), Caller{WalletAddress: wallet, PaymentID: paymentID}, "all-pricing")
	require.NoError(t, err)
	require.True(t, d.Authorized)

	rec := records.byID[paymentID]
	require.Equal(t, paymentrecords.StatusConfirmed, rec.Status)
	require.NotNil(t, rec.Signature)
	require.NotNil(t, rec.Receipt)
	require.Contains(t, *rec.Receipt, "RCPT-")
	require.NotNil(t, rec.WalletAddress)
	require.Equal(t, wallet, *rec.WalletAddress)

	grant := grants.byKey[wallet+"/all-pricing"]
	require.NotNil(t, grant)
	require.Nil(t, grant.ExpiresAt, "one_time service grants lifetime access")
	require.Equal(t, paymentID, *grant.PaymentID)

	// Subsequent checks use the grant, not the verifier.
	calls := verifier.calls
	again, err := g.Authorize(context.Background(), Caller{WalletAddress: wallet}, "all-pricing")
	require.NoError(t, err)
	require.True(t, again.Authorized)
	require.Equal(t, calls, verifier.calls)
}

func TestAuthorize_ConfirmedRecordWithoutWalletStillAuthorizes(t *testing.T) {
	verifier := &scriptedVerifier{result: payments.VerifyResult{Status: payments.StatusConfirmed, Signature: "5tx"}}
	g, _, grants := newTestGate(t, verifier)

	first, err := g.Authorize(context.Background(), Caller{}, "all-pricing")
	require.NoError(t, err)

	d, err := g.Authorize(context.Background(), Caller{PaymentID: first.Challenge.PaymentID}, "all-pricing")
	require.NoError(t, err)
	require.True(t, d.Authorized)
	require.Empty(t, grants.byKey, "no wallet, no grant row")
}

func TestAuthorize_RegrantOverwritesPaymentID(t *testing.T) {
	verifier := &scriptedVerifier{result: payments.VerifyResult{Status: payments.StatusConfirmed, Signature: "5tx"}}
	g, _, grants := newTestGate(t, verifier)

	first, err := g.Authorize(context.Background(), Caller{}, "all-pricing")
	require.NoError(t, err)
	_, err = g.Authorize(context.Background(), Caller{WalletAddress: wallet, PaymentID: first.Challenge.PaymentID}, "all-pricing")
	require.NoError(t, err)

	// Simulate the grant lapsing so a second purchase goes through the
	// payment path again.
	expired := time.Now().Add(-time.Hour)
	grants.byKey[wallet+"/all-pricing"].ExpiresAt = &expired

	second, err := g.Authorize(context.Background(), Caller{WalletAddress: wallet}, "all-pricing")
	require.NoError(t, err)
	require.False(t, second.Authorized)
	_, err = g.Authorize(context.Background(), Caller{WalletAddress: wallet, PaymentID: second.Challenge.PaymentID}, "all-pricing")
	require.NoError(t, err)

	require.Len(t, grants.byKey, 1, "re-grant overwrites, never duplicates")
	require.Equal(t, second.Challenge.PaymentID, *grants.byKey[wallet+"/all-pricing"].PaymentID)
}
