package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paygate/docs" //this is required to generate swagger docs
	"paygate/internal/auth"
	"paygate/internal/botcheck"
	"paygate/internal/domain/accessgrants"
	"paygate/internal/domain/adminusers"
	"paygate/internal/domain/paymentrecords"
	"paygate/internal/domain/services"
	"paygate/internal/domain/subscribers"
	"paygate/internal/gate"
	"paygate/internal/mailer"
	"paygate/internal/ratelimiter"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         storage
	gate          *gate.Gate
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   *ratelimiter.SlidingWindowLimiter
	botcheck      *botcheck.Checker
}

// storage aggregates the domain repositories.
type storage struct {
	Services    services.Store
	Payments    paymentrecords.Store
	Grants      accessgrants.Store
	Subscribers subscribers.Store
	Admins      adminusers.Store
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	frontendURL string
	mail        mailConfig
	auth        authConfig
	chains      chainConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret     string
	walletExp  time.Duration
	adminExp   time.Duration
	iss        string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

// chainConfig carries RPC/read-API endpoints and receiving addresses per
// chain. Network selection (mainnet/devnet) is entirely endpoint-driven.
type chainConfig struct {
	solanaRPC         string
	solanaRecipient   string
	ethereumAPI       string
	ethereumAPIKey    string
	ethereumRecipient string
	bitcoinAPI        string
	bitcoinRecipient  string
	lightningAPI      string
	lightningMacaroon string
	receiptSalt       string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Wallet-Address", "X-Payment-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/services", func(r chi.Router) {
			r.Get("/pricing", app.getServicePricingHandler)
			r.Post("/interest", app.planInterestHandler)
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.Post("/subscribe", app.subscribeHandler)
			r.Put("/confirm/{token}", app.confirmSubscriberHandler)
			r.Post("/upgrade", app.upgradeSubscriberHandler)
			r.Delete("/unsubscribe", app.unsubscribeHandler)
			r.With(app.AdminTokenMiddleware).Post("/send", app.sendNewsletterHandler)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Post("/auth", app.walletAuthHandler)
			r.With(app.WalletTokenMiddleware).Get("/access/{serviceSlug}", app.checkAccessHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", app.adminLoginHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AdminTokenMiddleware)
				r.Get("/payments", app.listPaymentsHandler)
				r.Get("/grants", app.listGrantsHandler)
				r.Post("/grants", app.createGrantHandler)
				r.Post("/campaigns/banner", app.uploadCampaignBannerHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
