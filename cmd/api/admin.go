package main

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"paygate/internal/auth"
	"paygate/internal/domain/accessgrants"
	"paygate/internal/params"
)

type AdminLoginPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type AdminSession struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// adminLogin godoc
//
//	@Summary		Admin login
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		AdminLoginPayload	true	"Credentials"
//	@Success		200		{object}	AdminSession
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Router			/admin/login [post]
func (app *application) adminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var payload AdminLoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if app.rateLimiter.IsRateLimited("adminlogin:"+payload.Email, 5, 15*time.Minute) {
		app.rateLimitExceededResponse(w, r, (15 * time.Minute).String())
		return
	}

	admin, err := app.store.Admins.GetByEmail(r.Context(), payload.Email)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if admin == nil {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(payload.Password)); err != nil {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid credentials"))
		return
	}

	token, err := app.authenticator.GenerateToken(admin.Email, auth.RoleAdmin, app.config.auth.token.adminExp)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	session := AdminSession{Token: token, Email: admin.Email, Role: admin.Role}
	if err := app.jsonResponse(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listPayments godoc
//
//	@Summary		List payment records
//	@Tags			admin
//	@Produce		json
//	@Param			page	query		int	false	"Page"
//	@Param			limit	query		int	false	"Items per page"
//	@Success		200		{object}	map[string]any
//	@Failure		401		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/payments [get]
func (app *application) listPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	records, err := app.store.Payments.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	total, err := app.store.Payments.Count(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{"payments": records, "pagination": p}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listGrants godoc
//
//	@Summary		List access grants
//	@Tags			admin
//	@Produce		json
//	@Param			page	query		int	false	"Page"
//	@Param			limit	query		int	false	"Items per page"
//	@Success		200		{object}	map[string]any
//	@Failure		401		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/grants [get]
func (app *application) listGrantsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	grants, err := app.store.Grants.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	total, err := app.store.Grants.Count(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	if err := app.jsonResponse(w, http.StatusOK, map[string]any{"grants": grants, "pagination": p}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CreateGrantPayload struct {
	WalletAddress string  `json:"wallet_address" validate:"required,walletaddr"`
	ServiceSlug   string  `json:"service_slug" validate:"required,max=100"`
	ExpiresAt     *string `json:"expires_at" validate:"omitempty"`
}

// createGrant godoc
//
//	@Summary		Manually grant service access to a wallet
//	@Description	Upserts the grant; an existing grant for the same wallet and service is overwritten.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateGrantPayload	true	"Grant details"
//	@Success		201		{object}	accessgrants.AccessGrant
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/admin/grants [post]
func (app *application) createGrantHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateGrantPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	svc, err := app.store.Services.GetBySlug(r.Context(), payload.ServiceSlug)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if svc == nil {
		app.notFoundResponse(w, r, fmt.Errorf("unknown service %s", payload.ServiceSlug))
		return
	}

	grant := &accessgrants.AccessGrant{
		WalletAddress: payload.WalletAddress,
		ServiceSlug:   svc.Slug,
		ServiceType:   svc.ServiceType,
	}
	if payload.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *payload.ExpiresAt)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid expires_at: %w", err))
			return
		}
		grant.ExpiresAt = &t
	}

	if err := app.store.Grants.Upsert(r.Context(), grant); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, grant); err != nil {
		app.internalServerError(w, r, err)
	}
}
