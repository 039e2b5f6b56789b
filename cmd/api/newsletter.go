package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"paygate/internal/domain/subscribers"
	"paygate/internal/mailer"
)

var (
	errDisposableEmail = errors.New("disposable email addresses are not accepted")
	errSuspiciousName  = errors.New("name was rejected")
)

type SubscribePayload struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Name  string `json:"name" validate:"omitempty,max=100"`
	Tier  string `json:"tier" validate:"required,oneof=free premium lifetime"`
}

// subscribe godoc
//
//	@Summary		Subscribe to the newsletter
//	@Description	Creates a pending subscription and emails a confirmation link.
//	@Tags			newsletter
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SubscribePayload	true	"Subscription details"
//	@Success		201		{object}	subscribers.Subscriber
//	@Failure		400		{object}	error
//	@Failure		409		{object}	error
//	@Failure		429		{object}	error
//	@Failure		500		{object}	error
//	@Router			/newsletter/subscribe [post]
func (app *application) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var payload SubscribePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if app.rateLimiter.IsRateLimited("subscribe:"+payload.Email, 5, time.Hour) {
		app.rateLimitExceededResponse(w, r, time.Hour.String())
		return
	}
	if app.rateLimiter.IsTooFast("subscribe:"+payload.Email, 30*time.Second) {
		app.rateLimitExceededResponse(w, r, (30 * time.Second).String())
		return
	}

	if app.botcheck.IsDisposableEmail(payload.Email) {
		app.badRequestResponse(w, r, errDisposableEmail)
		return
	}
	if app.botcheck.IsSuspiciousName(payload.Name) {
		app.badRequestResponse(w, r, errSuspiciousName)
		return
	}

	var name *string
	if payload.Name != "" {
		name = &payload.Name
	}

	confirmToken := uuid.NewString()

	subscriber, err := app.store.Subscribers.Subscribe(r.Context(), payload.Email, name, payload.Tier, confirmToken)
	if err != nil {
		switch {
		case errors.Is(err, subscribers.ErrAlreadySubscribed):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	confirmURL := fmt.Sprintf("%s/newsletter/confirm?token=%s", app.config.frontendURL, confirmToken)

	vars := struct {
		Username   string
		ConfirmURL string
	}{
		Username:   displayName(subscriber),
		ConfirmURL: confirmURL,
	}

	// The subscription row is the source of truth; a failed email is logged
	// and the caller can resubscribe to get a fresh token.
	status, err := app.mailer.Send(mailer.SubscriptionConfirmTemplate, vars.Username, subscriber.Email, vars)
	if err != nil {
		app.logger.Errorw("error sending confirmation email", "email", subscriber.Email, "error", err)
	} else {
		app.logger.Infow("confirmation email sent", "email", subscriber.Email, "attempts", status)
	}

	if err := app.jsonResponse(w, http.StatusCreated, subscriber); err != nil {
		app.internalServerError(w, r, err)
	}
}

// confirmSubscriber godoc
//
//	@Summary		Confirm a newsletter subscription
//	@Tags			newsletter
//	@Produce		json
//	@Param			token	path		string	true	"Confirmation token"
//	@Success		200		{object}	subscribers.Subscriber
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Router			/newsletter/confirm/{token} [put]
func (app *application) confirmSubscriberHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	subscriber, err := app.store.Subscribers.Confirm(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, subscribers.ErrTokenNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	vars := struct {
		Username  string
		Tier      string
		ManageURL string
	}{
		Username:  displayName(subscriber),
		Tier:      subscriber.Tier,
		ManageURL: fmt.Sprintf("%s/newsletter/preferences", app.config.frontendURL),
	}

	// Welcome email is best-effort; confirmation already succeeded.
	if _, err := app.mailer.Send(mailer.SubscriberWelcomeTemplate, vars.Username, subscriber.Email, vars); err != nil {
		app.logger.Errorw("error sending welcome email", "email", subscriber.Email, "error", err)
	}

	if err := app.jsonResponse(w, http.StatusOK, subscriber); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpgradePayload struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Tier  string `json:"tier" validate:"required,oneof=premium lifetime"`
}

// upgradeSubscriber godoc
//
//	@Summary		Upgrade a subscriber's tier
//	@Tags			newsletter
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	UpgradePayload	true	"Upgrade details"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Router			/newsletter/upgrade [post]
func (app *application) upgradeSubscriberHandler(w http.ResponseWriter, r *http.Request) {
	var payload UpgradePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Subscribers.UpgradeTier(r.Context(), payload.Email, payload.Tier); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			app.notFoundResponse(w, r, fmt.Errorf("no active subscription for %s", payload.Email))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"email": payload.Email, "tier": payload.Tier}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SendNewsletterPayload struct {
	Subject   string `json:"subject" validate:"required,max=200"`
	Body      string `json:"body" validate:"required"`
	BannerURL string `json:"banner_url" validate:"omitempty,url"`
	Tier      string `json:"tier" validate:"omitempty,oneof=free premium lifetime"`
}

// sendNewsletter godoc
//
//	@Summary		Send a newsletter issue to active subscribers
//	@Description	Delivery is best-effort per recipient; failures are logged and reported, not rolled back.
//	@Tags			newsletter
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	SendNewsletterPayload	true	"Issue content"
//	@Success		200		{object}	map[string]int
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/newsletter/send [post]
func (app *application) sendNewsletterHandler(w http.ResponseWriter, r *http.Request) {
	var payload SendNewsletterPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	active, err := app.store.Subscribers.ListActive(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	vars := struct {
		Subject   string
		Body      string
		BannerURL string
		SiteURL   string
	}{
		Subject:   payload.Subject,
		Body:      payload.Body,
		BannerURL: payload.BannerURL,
		SiteURL:   app.config.frontendURL,
	}

	sent, failed := 0, 0
	for _, s := range active {
		if payload.Tier != "" && s.Tier != payload.Tier {
			continue
		}
		if _, err := app.mailer.Send(mailer.NewsletterIssueTemplate, displayName(&s), s.Email, vars); err != nil {
			failed++
			app.logger.Errorw("error sending newsletter issue", "email", s.Email, "error", err)
			continue
		}
		sent++
	}

	app.logger.Infow("newsletter issue sent", "subject", payload.Subject, "sent", sent, "failed", failed)

	if err := app.jsonResponse(w, http.StatusOK, map[string]int{"sent": sent, "failed": failed}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UnsubscribePayload struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// unsubscribe godoc
//
//	@Summary		Unsubscribe from the newsletter
//	@Description	Idempotent; unsubscribing an unknown or already unsubscribed email succeeds.
//	@Tags			newsletter
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UnsubscribePayload	true	"Email to unsubscribe"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/newsletter/unsubscribe [delete]
func (app *application) unsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	var payload UnsubscribePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Subscribers.Unsubscribe(r.Context(), payload.Email); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("subscriber unsubscribed", "email", payload.Email)

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"email": payload.Email, "status": "unsubscribed"}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func displayName(s *subscribers.Subscriber) string {
	if s.Name != nil && *s.Name != "" {
		return *s.Name
	}
	return s.Email
}
