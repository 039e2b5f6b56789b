package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paygate/internal/domain/subscribers"
)

type fakeSubscribers struct {
	unsubscribed []string
}

func (f *fakeSubscribers) Subscribe(ctx context.Context, email string, name *string, tier, confirmToken string) (*subscribers.Subscriber, error) {
	return &subscribers.Subscriber{Email: email, Tier: tier, Status: subscribers.StatusPending}, nil
}

func (f *fakeSubscribers) Confirm(ctx context.Context, token string) (*subscribers.Subscriber, error) {
	return nil, subscribers.ErrTokenNotFound
}

func (f *fakeSubscribers) UpgradeTier(ctx context.Context, email, tier string) error { return nil }

func (f *fakeSubscribers) Unsubscribe(ctx context.Context, email string) error {
	f.unsubscribed = append(f.unsubscribed, email)
	return nil
}

func (f *fakeSubscribers) ListActive(ctx context.Context) ([]subscribers.Subscriber, error) {
	return nil, nil
}

func (f *fakeSubscribers) RecordPlanInterest(ctx context.Context, interest *subscribers.PlanInterest) error {
	return nil
}

func TestUnsubscribeHandler(t *testing.T) {
	subs := &fakeSubscribers{}
	app := &application{
		logger: zap.NewNop().Sugar(),
		store:  storage{Subscribers: subs},
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/newsletter/unsubscribe", strings.NewReader(`{"email":"carol@example.com"}`))
	rr := httptest.NewRecorder()
	app.unsubscribeHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"carol@example.com"}, subs.unsubscribed)
	require.Contains(t, rr.Body.String(), `"status":"unsubscribed"`)
}

func TestUnsubscribeHandler_InvalidEmail(t *testing.T) {
	subs := &fakeSubscribers{}
	app := &application{
		logger: zap.NewNop().Sugar(),
		store:  storage{Subscribers: subs},
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/newsletter/unsubscribe", strings.NewReader(`{"email":"not-an-email"}`))
	rr := httptest.NewRecorder()
	app.unsubscribeHandler(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Empty(t, subs.unsubscribed)
}
