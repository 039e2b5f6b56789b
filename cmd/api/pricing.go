package main

import (
	"errors"
	"net/http"
	"time"

	"paygate/internal/domain/services"
	"paygate/internal/domain/subscribers"
	"paygate/internal/gate"
)

// PricingResponse is returned once the caller is authorized.
type PricingResponse struct {
	Access  string             `json:"access"`
	Pricing []services.Service `json:"pricing"`
}

// getServicePricing godoc
//
//	@Summary		Get pricing for a protected service
//	@Description	Returns the pricing catalog if the caller has access, otherwise a 402 challenge with one payment option per supported chain.
//	@Tags			services
//	@Produce		json
//	@Param			service				query		string			false	"Service slug"	default(all-pricing)
//	@Param			X-Wallet-Address	header		string			false	"Caller wallet address"
//	@Param			X-Payment-Id		header		string			false	"Previously issued payment id"
//	@Success		200					{object}	PricingResponse	"Access granted"
//	@Failure		402					{object}	gate.Challenge	"Payment required"
//	@Failure		404					{object}	error
//	@Failure		500					{object}	error
//	@Router			/services/pricing [get]
func (app *application) getServicePricingHandler(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("service")
	if slug == "" {
		slug = "all-pricing"
	}

	caller := gate.Caller{
		WalletAddress: r.Header.Get("X-Wallet-Address"),
		PaymentID:     r.Header.Get("X-Payment-Id"),
	}

	decision, err := app.gate.Authorize(r.Context(), caller, slug)
	if err != nil {
		if errors.Is(err, gate.ErrUnknownService) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if !decision.Authorized {
		app.paymentRequiredResponse(w, r, decision.Challenge)
		return
	}

	pricing, err := app.store.Services.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, PricingResponse{Access: "granted", Pricing: pricing}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type PlanInterestPayload struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Tier  string `json:"tier" validate:"required,oneof=free premium lifetime"`
	Note  string `json:"note" validate:"omitempty,max=500"`
}

// planInterest godoc
//
//	@Summary		Register interest in a paid tier
//	@Tags			services
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	PlanInterestPayload	true	"Interest details"
//	@Success		201		{object}	subscribers.PlanInterest
//	@Failure		400		{object}	error
//	@Failure		429		{object}	error
//	@Router			/services/interest [post]
func (app *application) planInterestHandler(w http.ResponseWriter, r *http.Request) {
	var payload PlanInterestPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if app.rateLimiter.IsRateLimited("interest:"+payload.Email, 3, time.Hour) {
		app.rateLimitExceededResponse(w, r, time.Hour.String())
		return
	}
	if app.rateLimiter.IsTooFast("interest:"+payload.Email, 30*time.Second) {
		app.rateLimitExceededResponse(w, r, (30 * time.Second).String())
		return
	}

	if app.botcheck.IsDisposableEmail(payload.Email) {
		app.badRequestResponse(w, r, errDisposableEmail)
		return
	}

	interest := &subscribers.PlanInterest{
		Email: payload.Email,
		Tier:  payload.Tier,
	}
	if payload.Note != "" {
		interest.Note = &payload.Note
	}

	if err := app.store.Subscribers.RecordPlanInterest(r.Context(), interest); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, interest); err != nil {
		app.internalServerError(w, r, err)
	}
}
