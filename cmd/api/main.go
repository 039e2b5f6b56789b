package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"paygate/internal/auth"
	"paygate/internal/botcheck"
	"paygate/internal/db"
	"paygate/internal/domain/accessgrants"
	"paygate/internal/domain/adminusers"
	"paygate/internal/domain/paymentrecords"
	"paygate/internal/domain/services"
	"paygate/internal/domain/subscribers"
	"paygate/internal/gate"
	"paygate/internal/mailer"
	"paygate/internal/payments"
	"paygate/internal/ratelimiter"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            time.Minute,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

func envInt64(key string, fallback int64) int64 {
	if val, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
		fmt.Println("Invalid", key, "defaulting to", fallback)
	}
	return fallback
}

var version = "0.3.0"

//	@title			Paygate API
//	@description	Payment-gated services API with multi-chain payment verification.

//	@contact.name	API Support

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	maxConnsStr := os.Getenv("DB_MAX_CONNS")
	maxConns, err := strconv.Atoi(maxConnsStr)
	if err != nil {
		log.Fatalf("Invalid value for DB_MAX_CONNS: %v", err)
	}

	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		log.Fatalf("Invalid value for SMTP_PORT: %v", err)
	}

	cfg := config{
		addr:        os.Getenv("ADDR"),
		env:         os.Getenv("ENV"),
		frontendURL: os.Getenv("FRONTEND_URL"),
		apiURL:      os.Getenv("EXTERNAL_URL"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    int32(maxConns),
			maxIdleTime: os.Getenv("DB_MAX_IDLE_TIME"),
		},
		mail: mailConfig{
			fromEmail: os.Getenv("SMTP_FROM_EMAIL"),
			smtp: smtpConfig{
				host:     os.Getenv("SMTP_HOST"),
				port:     smtpPort,
				username: os.Getenv("SMTP_USERNAME"),
				password: os.Getenv("SMTP_PASSWORD"),
			},
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret:    os.Getenv("AUTH_TOKEN_SECRET"),
				walletExp: time.Hour * 24,     // 1 day
				adminExp:  time.Hour * 24 * 3, // 3 days
				iss:       "Paygate",
			},
		},
		chains: chainConfig{
			solanaRPC:         os.Getenv("SOLANA_RPC_URL"),
			solanaRecipient:   os.Getenv("SOLANA_RECIPIENT"),
			ethereumAPI:       os.Getenv("ETHERSCAN_API_URL"),
			ethereumAPIKey:    os.Getenv("ETHERSCAN_API_KEY"),
			ethereumRecipient: os.Getenv("ETHEREUM_RECIPIENT"),
			bitcoinAPI:        os.Getenv("ESPLORA_API_URL"),
			bitcoinRecipient:  os.Getenv("BITCOIN_RECIPIENT"),
			lightningAPI:      os.Getenv("LND_REST_URL"),
			lightningMacaroon: os.Getenv("LND_MACAROON"),
			receiptSalt:       os.Getenv("RECEIPT_SALT"),
		},
		rateLimiter: LoadRateLimiterConfig(),
	}

	// Logger
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Database
	pool, err := db.New(
		cfg.db.addr,
		cfg.db.maxConns,
		cfg.db.maxIdleTime,
	)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	if err := db.Migrate(context.Background(), cfg.db.addr); err != nil {
		logger.Fatal(err)
	}
	logger.Info("database migrations applied")

	// storage
	store := storage{
		Services:    services.NewRepository(pool),
		Payments:    paymentrecords.NewRepository(pool),
		Grants:      accessgrants.NewRepository(pool),
		Subscribers: subscribers.NewRepository(pool),
		Admins:      adminusers.NewRepository(pool),
	}

	// Chain verifiers. Each chain is registered only when its endpoint is
	// configured; an unregistered chain is simply not offered.
	verifiers := payments.NewVerifierManager()
	if cfg.chains.solanaRPC != "" {
		verifiers.Register(payments.ChainSolana, payments.NewSolanaAdapter(cfg.chains.solanaRPC, 10*time.Second))
	}
	if cfg.chains.ethereumAPI != "" {
		verifiers.Register(payments.ChainEthereum, payments.NewEthereumAdapter(
			cfg.chains.ethereumAPI,
			cfg.chains.ethereumAPIKey,
			envInt64("ETHEREUM_MIN_CONFIRMATIONS", 12),
			10*time.Second,
		))
	}
	if cfg.chains.bitcoinAPI != "" {
		verifiers.Register(payments.ChainBitcoin, payments.NewBitcoinAdapter(
			cfg.chains.bitcoinAPI,
			envInt64("BITCOIN_MIN_CONFIRMATIONS", 2),
			10*time.Second,
		))
	}
	if cfg.chains.lightningAPI != "" {
		verifiers.Register(payments.ChainLightning, payments.NewLightningAdapter(cfg.chains.lightningAPI, cfg.chains.lightningMacaroon, 10*time.Second))
	}

	// Payment gate
	paymentGate, err := gate.New(
		gate.Config{
			Recipients: map[payments.Chain]string{
				payments.ChainSolana:   cfg.chains.solanaRecipient,
				payments.ChainEthereum: cfg.chains.ethereumRecipient,
				payments.ChainBitcoin:  cfg.chains.bitcoinRecipient,
			},
			UnitRates: map[payments.Chain]int64{
				payments.ChainSolana:    envInt64("SOLANA_LAMPORTS_PER_CENT", 66000),
				payments.ChainEthereum:  envInt64("ETHEREUM_WEI_PER_CENT", 3300000000000),
				payments.ChainBitcoin:   envInt64("BITCOIN_SATS_PER_CENT", 15),
				payments.ChainLightning: envInt64("LIGHTNING_SATS_PER_CENT", 15),
			},
			OptionTTL:   20 * time.Minute,
			ReceiptSalt: cfg.chains.receiptSalt,
		},
		store.Services,
		store.Payments,
		store.Grants,
		verifiers,
		logger,
	)
	if err != nil {
		logger.Fatal(err)
	}

	// cloudinary
	cloudinaryUrl := os.Getenv("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryUrl)
	if err != nil {
		logger.Fatal(err)
	}

	// Mailer
	smtpMailer, err := mailer.NewSMTPClient(
		cfg.mail.smtp.host,
		cfg.mail.smtp.port,
		cfg.mail.smtp.username,
		cfg.mail.smtp.password,
		cfg.mail.fromEmail,
	)
	if err != nil {
		logger.Fatal(err)
	}

	// Rate limiter
	rateLimiter := ratelimiter.NewSlidingWindowLimiter(10 * time.Minute)

	// Authenticator
	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
	)

	// Bot checks
	botChecker, err := botcheck.New(botcheck.Config{})
	if err != nil {
		logger.Fatal(err)
	}

	app := &application{
		config:        cfg,
		store:         store,
		gate:          paymentGate,
		logger:        logger,
		cld:           cld,
		mailer:        smtpMailer,
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
		botcheck:      botChecker,
	}

	// Metrics collected at /v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return pool.Stat()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
