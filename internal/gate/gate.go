package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	hashids "github.com/speps/go-hashids/v2"
	"go.uber.org/zap"

	"paygate/internal/domain/accessgrants"
	"paygate/internal/domain/paymentrecords"
	"paygate/internal/domain/services"
	"paygate/internal/payments"
)

var ErrUnknownService = errors.New("unknown service")

type Config struct {
	// Recipients maps each chain to the deployment's receiving address.
	// Lightning needs none (the invoice is the destination).
	Recipients map[payments.Chain]string

	// UnitRates converts the configured price to chain base units:
	// base units per currency cent (lamports, sats, gwei...).
	UnitRates map[payments.Chain]int64

	// OptionTTL is how long issued payment options stay fresh.
	OptionTTL time.Duration

	// ReceiptSalt seeds receipt number generation.
	ReceiptSalt string
}

// Gate decides, per request, whether a caller may access a priced resource
// and produces the 402 challenge when it may not.
type Gate struct {
	cfg       Config
	services  services.Store
	records   paymentrecords.Store
	grants    accessgrants.Store
	verifiers *payments.VerifierManager
	logger    *zap.SugaredLogger
	receipts  *hashids.HashID
}

func New(
	cfg Config,
	svcs services.Store,
	records paymentrecords.Store,
	grants accessgrants.Store,
	verifiers *payments.VerifierManager,
	logger *zap.SugaredLogger,
) (*Gate, error) {
	if cfg.OptionTTL <= 0 {
		cfg.OptionTTL = 20 * time.Minute
	}

	hd := hashids.NewData()
	hd.Salt = cfg.ReceiptSalt
	hd.MinLength = 10
	receipts, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("receipt generator: %w", err)
	}

	return &Gate{
		cfg:       cfg,
		services:  svcs,
		records:   records,
		grants:    grants,
		verifiers: verifiers,
		logger:    logger,
		receipts:  receipts,
	}, nil
}

// Authorize answers "may this caller access slug?". Branch order: existing
// grant, then supplied payment id, then a fresh challenge. Every store write
// happens before returning; a store failure surfaces as an error, never as a
// half-granted decision.
func (g *Gate) Authorize(ctx context.Context, caller Caller, slug string) (*Decision, error) {
	svc, err := g.services.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrUnknownService
	}

	if caller.WalletAddress != "" {
		grant, err := g.grants.Get(ctx, caller.WalletAddress, slug)
		if err != nil {
			return nil, err
		}
		if grant != nil && grant.Valid(time.Now()) {
			return &Decision{Authorized: true}, nil
		}
	}

	if caller.PaymentID != "" {
		decision, err := g.checkPayment(ctx, caller, svc)
		if err != nil || decision != nil {
			return decision, err
		}
		// Unknown or mismatched payment id falls through to a fresh challenge.
	}

	return g.freshChallenge(ctx, caller, svc)
}

func (g *Gate) checkPayment(ctx context.Context, caller Caller, svc *services.Service) (*Decision, error) {
	record, err := g.records.GetByID(ctx, caller.PaymentID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.ServiceSlug != svc.Slug {
		return nil, nil
	}

	switch record.Status {
	case paymentrecords.StatusConfirmed:
		if err := g.grantAccess(ctx, caller, svc, record); err != nil {
			return nil, err
		}
		return &Decision{Authorized: true}, nil

	case paymentrecords.StatusFailed:
		return nil, nil

	case paymentrecords.StatusPending:
		// fall through to verification below
	}

	for _, ref := range record.References {
		chain := payments.Chain(ref.Chain)
		res, err := g.verifiers.VerifyTransfer(ctx, chain, payments.VerifyRequest{
			Reference: ref.Reference,
			Amount:    ref.Amount,
			Recipient: g.cfg.Recipients[chain],
		})
		if err != nil {
			// Verifier unreachable or timed out: not yet confirmed, the
			// caller retries with the same payment id.
			g.logger.Warnw("chain verification unavailable", "chain", ref.Chain, "payment_id", record.ID, "error", err)
			continue
		}
		if res.Status != payments.StatusConfirmed {
			continue
		}

		if caller.WalletAddress != "" && record.WalletAddress == nil {
			if err := g.records.AttachWallet(ctx, record.ID, caller.WalletAddress); err != nil {
				return nil, err
			}
		}

		err = g.records.MarkConfirmed(ctx, record.ID, ref.Chain, res.Signature, g.receiptNumber(record.Seq))
		if err != nil && !errors.Is(err, paymentrecords.ErrInvalidTransition) {
			return nil, err
		}

		if err := g.grantAccess(ctx, caller, svc, record); err != nil {
			return nil, err
		}
		return &Decision{Authorized: true}, nil
	}

	if time.Now().After(record.ExpiresAt) {
		// Challenge lapsed unpaid; fall through and mint a fresh one.
		return nil, nil
	}

	// Nothing confirmed yet: reissue the same challenge so no orphaned
	// references are minted.
	return &Decision{Challenge: g.challengeFromRecord(record)}, nil
}

func (g *Gate) grantAccess(ctx context.Context, caller Caller, svc *services.Service, record *paymentrecords.PaymentRecord) error {
	wallet := caller.WalletAddress
	if wallet == "" && record.WalletAddress != nil {
		wallet = *record.WalletAddress
	}
	if wallet == "" {
		// No wallet to key a grant by; the confirmed record itself keeps
		// authorizing this payment id.
		return nil
	}

	var expiresAt *time.Time
	if svc.ServiceType == services.TypeSubscription && svc.DurationDays != nil {
		t := time.Now().AddDate(0, 0, *svc.DurationDays)
		expiresAt = &t
	}

	return g.grants.Upsert(ctx, &accessgrants.AccessGrant{
		WalletAddress: wallet,
		ServiceSlug:   svc.Slug,
		PaymentID:     &record.ID,
		ServiceType:   svc.ServiceType,
		ExpiresAt:     expiresAt,
	})
}

func (g *Gate) freshChallenge(ctx context.Context, caller Caller, svc *services.Service) (*Decision, error) {
	record := &paymentrecords.PaymentRecord{
		ID:          uuid.NewString(),
		ServiceSlug: svc.Slug,
		AmountCents: svc.PriceCents,
		Currency:    svc.Currency,
		ExpiresAt:   time.Now().Add(g.cfg.OptionTTL),
	}
	if caller.WalletAddress != "" {
		record.WalletAddress = &caller.WalletAddress
	}

	for _, chain := range g.verifiers.Chains() {
		reference, err := NewReference(chain)
		if err != nil {
			return nil, err
		}
		record.References = append(record.References, paymentrecords.ChainReference{
			Chain:     string(chain),
			Reference: reference,
			Amount:    svc.PriceCents * g.cfg.UnitRates[chain],
		})
	}

	if err := g.records.Create(ctx, record); err != nil {
		return nil, err
	}

	return &Decision{Challenge: g.challengeFromRecord(record)}, nil
}

func (g *Gate) challengeFromRecord(record *paymentrecords.PaymentRecord) *Challenge {
	ch := &Challenge{
		PaymentID: record.ID,
		ExpiresAt: record.ExpiresAt,
	}
	for _, ref := range record.References {
		chain := payments.Chain(ref.Chain)
		option := payments.PaymentOption{
			Chain:    chain,
			Amount:   ref.Amount,
			Currency: record.Currency,
		}
		if chain == payments.ChainLightning {
			option.Invoice = ref.Reference
		} else {
			option.Reference = ref.Reference
			option.Recipient = g.cfg.Recipients[chain]
		}
		ch.Options = append(ch.Options, option)
	}
	return ch
}

func (g *Gate) receiptNumber(seq int64) string {
	tag, err := g.receipts.EncodeInt64([]int64{seq})
	if err != nil {
		// EncodeInt64 only fails on negative input; seq is a serial.
		tag = fmt.Sprintf("%d", seq)
	}
	return "RCPT-" + strings.ToUpper(tag)
}
